package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration

	// StoreBackend selects persistence: "memory" or "mongo".
	StoreBackend  string
	MongoURI      string
	MongoDatabase string

	UploadDir      string
	MaxUploadBytes int64

	ModelPath       string
	BackupModelPath string

	InferenceTimeout time.Duration

	SweepInterval time.Duration
	SweepMaxAge   time.Duration

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		Addr:      getEnv("ADDR", ":8080"),
		JWTSecret: getEnv("JWT_SECRET", "your_jwt_secret_key"),
		TokenTTL:  getDuration("TOKEN_TTL", 24*time.Hour),

		StoreBackend:  getEnv("STORE_BACKEND", "memory"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "neuroshield"),

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", 16<<20),

		ModelPath:       getEnv("MODEL_PATH", "model.json"),
		BackupModelPath: getEnv("BACKUP_MODEL_PATH", "model_backup.json"),

		InferenceTimeout: getDuration("INFERENCE_TIMEOUT", 30*time.Second),

		SweepInterval: getDuration("SWEEP_INTERVAL", 20*time.Minute),
		SweepMaxAge:   getDuration("SWEEP_MAX_AGE", time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
