package store_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/risk"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/store"
)

func record(owner string) *models.ScanRecord {
	return &models.ScanRecord{
		OwnerID:     owner,
		RiskBand:    risk.Low,
		Probability: 0.1,
		Advice:      risk.Advice(risk.Low),
	}
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	s := store.NewMemoryRecordStore()
	ctx := context.Background()

	for want := int64(0); want < 5; want++ {
		id, err := s.Append(ctx, record("alice"))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestConcurrentAppendsDoNotCollide(t *testing.T) {
	s := store.NewMemoryRecordStore()
	ctx := context.Background()

	const n = 200
	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Append(ctx, record("alice"))
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, int64(i), id, "ids must be dense and distinct")
	}

	recs, err := s.ListFor(ctx, "", models.RoleDoctor)
	require.NoError(t, err)
	assert.Len(t, recs, n, "no lost writes")
}

func TestListForVisibility(t *testing.T) {
	s := store.NewMemoryRecordStore()
	ctx := context.Background()

	_, err := s.Append(ctx, record("alice"))
	require.NoError(t, err)
	_, err = s.Append(ctx, record("bob"))
	require.NoError(t, err)
	_, err = s.Append(ctx, record("alice"))
	require.NoError(t, err)

	patient, err := s.ListFor(ctx, "alice", models.RolePatient)
	require.NoError(t, err)
	require.Len(t, patient, 2)
	for _, r := range patient {
		assert.Equal(t, "alice", r.OwnerID)
	}

	doctor, err := s.ListFor(ctx, "dr-jones", models.RoleDoctor)
	require.NoError(t, err)
	assert.Len(t, doctor, 3)
}

func TestListForOrdering(t *testing.T) {
	s := store.NewMemoryRecordStore()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := s.Append(ctx, record("alice"))
		require.NoError(t, err)
	}

	recs, err := s.ListFor(ctx, "alice", models.RolePatient)
	require.NoError(t, err)
	for i, r := range recs {
		assert.Equal(t, int64(i), r.ID)
	}
}

func TestSetNotes(t *testing.T) {
	s := store.NewMemoryRecordStore()
	ctx := context.Background()

	id, err := s.Append(ctx, record("alice"))
	require.NoError(t, err)

	require.NoError(t, s.SetNotes(ctx, id, "first pass"))
	require.NoError(t, s.SetNotes(ctx, id, "second pass"))

	recs, err := s.ListFor(ctx, "alice", models.RolePatient)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "second pass", recs[0].Notes, "last write wins")

	assert.ErrorIs(t, s.SetNotes(ctx, 42, "x"), store.ErrNotFound)
	assert.ErrorIs(t, s.SetNotes(ctx, 42, "y"), store.ErrNotFound)
	assert.ErrorIs(t, s.SetNotes(ctx, -1, "z"), store.ErrNotFound)
}

func TestUserStore(t *testing.T) {
	s := store.NewMemoryUserStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.User{Username: "alice", Role: models.RolePatient}))
	require.NoError(t, s.Create(ctx, &models.User{Username: "dr-jones", Role: models.RoleDoctor}))

	assert.ErrorIs(t, s.Create(ctx, &models.User{Username: "alice", Role: models.RolePatient}), store.ErrDuplicateUser)

	u, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, u.Role)

	_, err = s.Get(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	patients, err := s.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "alice", patients[0].Username)
}
