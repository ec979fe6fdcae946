package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Engine       EngineConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Engine.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DROPSIGHT_APP_ENV" required:"true"`
	Port         string `envconfig:"DROPSIGHT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DROPSIGHT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DROPSIGHT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DROPSIGHT_DB_DSN"`
	Driver string `envconfig:"DROPSIGHT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DROPSIGHT_DB_HOST"`
	LegacyPort     int    `envconfig:"DROPSIGHT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DROPSIGHT_DB_USER"`
	LegacyPassword string `envconfig:"DROPSIGHT_DB_PASSWORD"`
	LegacyName     string `envconfig:"DROPSIGHT_DB_NAME"`
	LegacySSLMode  string `envconfig:"DROPSIGHT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DROPSIGHT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DROPSIGHT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DROPSIGHT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DROPSIGHT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DROPSIGHT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DROPSIGHT_REDIS_ADDR"`
	Password     string        `envconfig:"DROPSIGHT_REDIS_PASSWORD"`
	DB           int           `envconfig:"DROPSIGHT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DROPSIGHT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DROPSIGHT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DROPSIGHT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DROPSIGHT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DROPSIGHT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// EngineConfig tunes the drop analytics engine. DefaultBaseline is the
// starting stock assumed for a variant when no inventory snapshot row exists.
type EngineConfig struct {
	DefaultBaseline int `envconfig:"DROPSIGHT_ENGINE_DEFAULT_BASELINE" default:"50"`
}

func (e EngineConfig) validate() error {
	if e.DefaultBaseline <= 0 {
		return fmt.Errorf("engine default baseline must be positive, got %d", e.DefaultBaseline)
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DROPSIGHT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DROPSIGHT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
