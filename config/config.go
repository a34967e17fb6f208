package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// Store drivers understood by StoreDriver
const (
	StoreDriverMemory   = "memory"
	StoreDriverMongo    = "mongo"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	StoreDriver      string
	SQLitePath       string
	PostgresDSN      string
	PostgresMaxConns int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SharedPassword string

	SendgridAPIKey  string
	DigestFromEmail string
	DigestCron      string
	DeadlineAlerts  bool

	CloudinaryAPISecret    string
	CloudinaryUploadPreset string
}

// New sets up all config related services
func New() *Config {
	env := getEnv("ENV", "production")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	pgMaxConns, _ := strconv.Atoi(os.Getenv("POSTGRES_MAX_CONNS"))
	deadlineAlerts, _ := strconv.ParseBool(os.Getenv("DEADLINE_ALERTS"))

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         getEnv("PORT", "8080"),
		Env:          env,

		StoreDriver:      getEnv("STORE_DRIVER", StoreDriverMemory),
		SQLitePath:       getEnv("SQLITE_PATH", "prosecution.db"),
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		PostgresMaxConns: pgMaxConns,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		SharedPassword: getEnv("SHARED_PASSWORD", "password123"),

		SendgridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		DigestFromEmail: getEnv("DIGEST_FROM_EMAIL", "no-reply@prosecution-office.local"),
		DigestCron:      getEnv("DIGEST_CRON", "0 6 * * *"),
		DeadlineAlerts:  deadlineAlerts,

		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	zap.S().Errorw(message, "status", httpStatusCode, "error", errText)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errText}})
	w.Write(b)
}
