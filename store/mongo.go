package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
)

const (
	scansCollection    = "scans"
	usersCollection    = "users"
	countersCollection = "counters"
)

// MongoRecordStore persists scan records in MongoDB. Monotonic ids come from
// an atomic $inc on a counters document, so concurrent appends cannot collide.
type MongoRecordStore struct {
	scans    *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRecordStore(db *mongo.Database) *MongoRecordStore {
	return &MongoRecordStore{
		scans:    db.Collection(scansCollection),
		counters: db.Collection(countersCollection),
	}
}

func (s *MongoRecordStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": scansCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	// Counter starts at 1; record ids start at 0 like the in-memory store.
	return counter.Seq - 1, nil
}

func (s *MongoRecordStore) Append(ctx context.Context, rec *models.ScanRecord) (int64, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return 0, err
	}

	r := *rec
	r.ID = id
	if _, err := s.scans.InsertOne(ctx, r); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *MongoRecordStore) ListFor(ctx context.Context, requesterID string, role models.Role) ([]models.ScanRecord, error) {
	filter := bson.M{}
	if role != models.RoleDoctor {
		filter["ownerId"] = requesterID
	}

	cur, err := s.scans.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.ScanRecord, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoRecordStore) SetNotes(ctx context.Context, id int64, notes string) error {
	res, err := s.scans.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"notes": notes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUserStore persists users keyed by username.
type MongoUserStore struct {
	users *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection(usersCollection)}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUser
	}
	return err
}

func (s *MongoUserStore) Get(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"_id": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) ListPatients(ctx context.Context) ([]models.User, error) {
	cur, err := s.users.Find(ctx, bson.M{"role": models.RolePatient})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.User, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
