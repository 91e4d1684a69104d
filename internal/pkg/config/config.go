package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, limits), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Policy    PolicyConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// AdminConfig backs the single operator login. The hash is a bcrypt digest;
// no user table is involved.
type AdminConfig struct {
	Email        string `envconfig:"ADMIN_EMAIL" default:"admin@coop.local"`
	PasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
}

// PolicyConfig holds the reservation business limits. These are deliberately
// re-read on every engine call (see EnvPolicySource) so operators can adjust
// them without a restart.
type PolicyConfig struct {
	StandardTimeoutDays     int `envconfig:"POLICY_STANDARD_TIMEOUT_DAYS" default:"30"`
	CancellationTimeoutDays int `envconfig:"POLICY_CANCELLATION_TIMEOUT_DAYS" default:"7"`
	MaxReservationsPerYear  int `envconfig:"POLICY_MAX_RESERVATIONS_PER_YEAR" default:"3"`
}

type SchedulerConfig struct {
	Enabled            bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	TransitionInterval time.Duration `envconfig:"SCHEDULER_TRANSITION_INTERVAL" default:"1h"`
	ExpiryInterval     time.Duration `envconfig:"SCHEDULER_EXPIRY_INTERVAL" default:"5m"`
	NotifyWindowHours  int           `envconfig:"SCHEDULER_NOTIFY_WINDOW_HOURS" default:"24"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadPolicyConfig re-reads only the policy section from the environment.
func LoadPolicyConfig() (PolicyConfig, error) {
	var cfg PolicyConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return PolicyConfig{}, fmt.Errorf("failed to process policy config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Policy: PolicyConfig{
			StandardTimeoutDays:     30,
			CancellationTimeoutDays: 7,
			MaxReservationsPerYear:  3,
		},
	}
}
