package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cdtdelta/typedsql/internal/database"
	"github.com/cdtdelta/typedsql/query"
)

const maxWalkDepth = 25

// Config is the sqlqb configuration from sqlqb.yaml.
type Config struct {
	Limits   LimitsConfig   `mapstructure:"limits"`
	Database DatabaseConfig `mapstructure:"database"`
}

// LimitsConfig holds the builder capacities.
type LimitsConfig struct {
	MaxColumns    int  `mapstructure:"max_columns"`
	MaxConditions int  `mapstructure:"max_conditions"`
	MaxJoins      int  `mapstructure:"max_joins"`
	MaxOrderBy    int  `mapstructure:"max_order_by"`
	MaxGroupBy    int  `mapstructure:"max_group_by"`
	MaxInValues   int  `mapstructure:"max_in_values"`
	RaiseOnError  bool `mapstructure:"raise_on_error"`
}

// DatabaseConfig holds connection settings for exec.
type DatabaseConfig struct {
	Driver        string        `mapstructure:"driver"`
	DSN           string        `mapstructure:"dsn"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// LoadConfig discovers and loads configuration with precedence
// flags > env > config file > defaults.
//
// It returns the config and the path of the file it read (empty if none).
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SQLQB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

// DefaultConfig is the configuration used when nothing is set.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("limits.max_columns", query.DefaultMaxColumns)
	v.SetDefault("limits.max_conditions", query.DefaultMaxConditions)
	v.SetDefault("limits.max_joins", query.DefaultMaxJoins)
	v.SetDefault("limits.max_order_by", query.DefaultMaxOrderBy)
	v.SetDefault("limits.max_group_by", query.DefaultMaxGroupBy)
	v.SetDefault("limits.max_in_values", query.DefaultMaxInValues)
	v.SetDefault("limits.raise_on_error", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.slow_threshold", database.DefaultSlowThreshold)
}

// findConfigFile returns explicitPath if it exists. Otherwise it walks up
// from cwd looking for sqlqb.yaml or sqlqb.yml, stopping at a .git entry
// or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"sqlqb.yaml", "sqlqb.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// QueryConfig converts the limits into a builder configuration.
func (c *Config) QueryConfig() query.Config {
	l := c.Limits
	return query.Config{
		MaxColumns:    l.MaxColumns,
		MaxConditions: l.MaxConditions,
		MaxJoins:      l.MaxJoins,
		MaxOrderBy:    l.MaxOrderBy,
		MaxGroupBy:    l.MaxGroupBy,
		MaxInValues:   l.MaxInValues,
		RaiseOnError:  l.RaiseOnError,
	}
}
