package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const (
	MoveCacheMemory = "memory"
	MoveCacheRedis  = "redis"
	MoveCacheNone   = "none"
)

type Config struct {
	LogLevel     string       `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFile      string       `yaml:"log-file" env:"LOG_FILE"`
	Search       Search       `yaml:"search"`
	MoveCache    MoveCache    `yaml:"move-cache"`
	Telemetry    Telemetry    `yaml:"telemetry"`
	Presentation Presentation `yaml:"presentation"`
}

// cleanenv refills zero values from env-default, so search flags default to false.
type Search struct {
	DisableTranspositionTable bool `yaml:"disable-transposition-table" env:"SEARCH_DISABLE_TRANSPOSITION_TABLE"`
}

type MoveCache struct {
	Backend string        `yaml:"backend" env:"MOVE_CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis none"`
	TTL     time.Duration `yaml:"ttl" env:"MOVE_CACHE_TTL" env-default:"0s" validate:"gte=0s"`
	Redis   Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Telemetry struct {
	TraceFile string `yaml:"trace-file" env:"TRACE_FILE"`
}

type Presentation struct {
	ComputerDelay time.Duration `yaml:"computer-delay" env:"COMPUTER_DELAY" env-default:"0s" validate:"gte=0s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the yaml file at path, then applies env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	err := validate.Struct(that)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	// report the first bad key only
	fieldErr := fieldErrors[0]
	switch {
	case fieldErr.Tag() == "gte":
		return fmt.Errorf("%w: %s %v", ErrNegativeDuration, fieldErr.Namespace(), fieldErr.Value())
	case fieldErr.StructField() == "Backend":
		return fmt.Errorf("%w: %q", ErrUnknownMoveCache, fieldErr.Value())
	case fieldErr.StructField() == "LogLevel":
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, fieldErr.Value())
	default:
		return fmt.Errorf("invalid config: %w", err)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
