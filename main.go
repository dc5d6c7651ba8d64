package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/auth"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/classifier"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/config"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/database"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/handlers"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/logging"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/middleware"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/scheduler"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/store"
)

func main() {
	cfg := config.Load()
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("create upload dir", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var records store.RecordStore
	var users store.UserStore
	switch cfg.StoreBackend {
	case "mongo":
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			logger.Error("connect to mongodb", "uri", cfg.MongoURI, "error", err)
			os.Exit(1)
		}
		defer client.Disconnect(context.Background())
		db := client.Database(cfg.MongoDatabase)
		records = store.NewMongoRecordStore(db)
		users = store.NewMongoUserStore(db)
		logger.Info("using mongodb store", "database", cfg.MongoDatabase)
	default:
		records = store.NewMemoryRecordStore()
		users = store.NewMemoryUserStore()
		logger.Info("using in-memory store")
	}

	// A missing model is not fatal: the service starts and refuses
	// predictions until a model is present at restart.
	model := classifier.Load(logger, cfg.ModelPath, cfg.BackupModelPath)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	h := &handlers.Handler{
		Records:          records,
		Users:            users,
		Tokens:           tokens,
		Model:            model,
		Logger:           logger,
		UploadDir:        cfg.UploadDir,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		InferenceTimeout: cfg.InferenceTimeout,
	}

	go scheduler.StartUploadSweeper(ctx, cfg.UploadDir, cfg.SweepInterval, cfg.SweepMaxAge, logger)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	authed := api.Group("/", middleware.RequireAuth(tokens))
	authed.GET("/check-auth", h.CheckAuth)
	authed.POST("/predict", h.Predict)
	authed.GET("/predictions", h.ListPredictions)
	authed.POST("/predictions/:id/notes", middleware.RequireRole(models.RoleDoctor), h.AddNotes)
	authed.GET("/patients", middleware.RequireRole(models.RoleDoctor), h.ListPatients)

	logger.Info("starting server", "addr", cfg.Addr, "model_ready", model.Ready())
	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
