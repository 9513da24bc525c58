package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	SessionKey      string   `mapstructure:"SESSION_SIGNING_KEY"`
	SessionTTLHours int      `mapstructure:"SESSION_TTL_HOURS"`
	AdminPIN        string   `mapstructure:"BOOTSTRAP_ADMIN_PIN"`
	AdminPassword   string   `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`

	// EnforceServiceDepartment turns on the write-time check that a
	// doctor's service belongs to the chosen department. The historical
	// behavior only filtered options in the UI, so the default is off.
	EnforceServiceDepartment bool `mapstructure:"ENFORCE_SERVICE_DEPARTMENT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_TTL_HOURS", 12)
	v.SetDefault("BOOTSTRAP_ADMIN_PIN", "000000000000")
	v.SetDefault("ENFORCE_SERVICE_DEPARTMENT", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SESSION_SIGNING_KEY")
	v.BindEnv("SESSION_TTL_HOURS")
	v.BindEnv("BOOTSTRAP_ADMIN_PIN")
	v.BindEnv("BOOTSTRAP_ADMIN_PASSWORD")
	v.BindEnv("ENFORCE_SERVICE_DEPARTMENT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevSessionMiddleware is active — all requests act as the admin.")
		log.Println("WARNING: set ENV=production and SESSION_SIGNING_KEY for production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a session signing key is required so that real session tokens are enforced,
// and the bootstrap admin pin must be a 12-digit string.
func (c *Config) Validate() error {
	if !c.IsDev() && c.SessionKey == "" {
		return fmt.Errorf("SESSION_SIGNING_KEY is required when ENV=%q", c.Env)
	}
	if len(c.AdminPIN) != 12 {
		return fmt.Errorf("BOOTSTRAP_ADMIN_PIN must be a 12-digit string, got %q", c.AdminPIN)
	}
	for _, r := range c.AdminPIN {
		if r < '0' || r > '9' {
			return fmt.Errorf("BOOTSTRAP_ADMIN_PIN must be numeric, got %q", c.AdminPIN)
		}
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.SessionTTLHours)
	}
	return nil
}
