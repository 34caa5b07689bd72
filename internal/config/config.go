package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables

	"github.com/joho/godotenv" // godotenv loads a local .env file into the environment
)

// Production is the APP_ENV value that switches the server to static asset
// serving and production logging.
const Production = "production"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only the database coordinates are mandatory;
// everything else falls back to a development default.
type Config struct {
	Env  string // application environment ("development" or "production")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret         string // secret used to sign admin tokens
	AdminPassword     string // shared admin password (plaintext, hashed at startup)
	AdminPasswordHash string // pre-computed bcrypt hash; wins over AdminPassword
	AdminTTLMin       int    // admin token time-to-live in minutes
	BcryptCost        int    // bcrypt cost for hashing the admin password

	UploadDir      string // directory for uploaded flyer images
	MaxUploadBytes int64  // upload size ceiling in bytes
	StaticDir      string // built front-end assets served in production
	DevServerURL   string // front-end dev server proxied in development

	Timezone           string // IANA zone of the venue, used for "today"
	HolidayICS         string // optional ICS holiday feed (path or URL)
	HolidayRefreshCron string // cron spec for refreshing the holiday feed
	VenueFile          string // optional YAML file with venue content
	SeedDemo           bool   // seed demo events into an empty table
	AMQPURL            string // RabbitMQ URL for the schedule change feed (optional)
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool { return c.Env == Production }

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when present.
// Required variables are enforced by must() and missing values cause the
// program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // a missing .env is normal outside local development

	cfg := Config{
		Env:  envStr("APP_ENV", "development"),
		Port: envStr("PORT", "3000"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: must("DB_NAME"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPassword:     envStr("ADMIN_PASSWORD", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTTLMin:       envInt("ADMIN_TOKEN_TTL_MIN", 720),
		BcryptCost:        envInt("BCRYPT_COST", 10),

		UploadDir:      envStr("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		StaticDir:      envStr("STATIC_DIR", "dist"),
		DevServerURL:   envStr("DEV_SERVER_URL", "http://localhost:5173"),

		Timezone:           envStr("VENUE_TIMEZONE", "Asia/Tokyo"),
		HolidayICS:         os.Getenv("HOLIDAY_ICS"),
		HolidayRefreshCron: envStr("HOLIDAY_REFRESH_CRON", "@daily"),
		VenueFile:          os.Getenv("VENUE_FILE"),
		SeedDemo:           envBool("SEED_DEMO", true),
		AMQPURL:            amqpURL(),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatalf("missing required env var: JWT_SECRET")
		}
		cfg.JWTSecret = "dev-only-secret"
	}
	return cfg
}

// amqpURL returns the broker URL.  An empty value disables the change feed.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
