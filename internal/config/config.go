package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Tiers    TierConfig     `yaml:"tiers" mapstructure:"tiers"`
	Distance DistanceConfig `yaml:"distance" mapstructure:"distance"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// InputConfig describes the dataset file and how to type its columns.
type InputConfig struct {
	Path          string   `yaml:"path" mapstructure:"path"`
	ColumnTypes   []string `yaml:"column_types" mapstructure:"column_types"`
	PrimaryColumn string   `yaml:"primary_column" mapstructure:"primary_column"`
	Delimiter     string   `yaml:"delimiter" mapstructure:"delimiter"`
	Sheet         string   `yaml:"sheet" mapstructure:"sheet"`
	NumericPolicy string   `yaml:"numeric_policy" mapstructure:"numeric_policy"` // "tolerant" or "strict"
}

// TierConfig holds the cut points and bucketing parameters for tier assignment.
type TierConfig struct {
	DangerousMax   float64 `yaml:"dangerous_max" mapstructure:"dangerous_max"`
	ModerateMax    float64 `yaml:"moderate_max" mapstructure:"moderate_max"`
	BucketFraction float64 `yaml:"bucket_fraction" mapstructure:"bucket_fraction"`
	Source         string  `yaml:"source" mapstructure:"source"` // "score" or "distance"
}

// DistanceConfig configures distance matrix construction.
type DistanceConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Numeric parsing policies.
const (
	NumericTolerant = "tolerant"
	NumericStrict   = "strict"
)

// Tier sources.
const (
	SourceScore    = "score"
	SourceDistance = "distance"
)

// Output formats.
var outputFormats = []string{"table", "csv", "json", "yaml"}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COUNTRYRISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.path", "Most Dangerous Countries.csv")
	v.SetDefault("input.column_types", []string{})
	v.SetDefault("input.primary_column", "")
	v.SetDefault("input.delimiter", "") // auto: tab for .tsv, comma otherwise
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.numeric_policy", NumericTolerant)
	v.SetDefault("tiers.dangerous_max", 0.60)
	v.SetDefault("tiers.moderate_max", 0.80)
	v.SetDefault("tiers.bucket_fraction", 0.25)
	v.SetDefault("tiers.source", SourceScore)
	v.SetDefault("distance.workers", 1)
	v.SetDefault("output.format", "table")
	v.SetDefault("output.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// A single env var like COUNTRYRISK_INPUT_COLUMN_TYPES="name,score" arrives as one element.
	cfg.Input.ColumnTypes = splitList(cfg.Input.ColumnTypes)

	return &cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Input.Path) == "" {
		errs = append(errs, "input.path is required")
	}
	if len(c.Input.ColumnTypes) == 0 {
		errs = append(errs, "input.column_types is required")
	}
	if len([]rune(c.Input.Delimiter)) > 1 {
		errs = append(errs, fmt.Sprintf("input.delimiter must be a single character, got %q", c.Input.Delimiter))
	}
	switch c.Input.NumericPolicy {
	case NumericTolerant, NumericStrict:
	default:
		errs = append(errs, fmt.Sprintf("input.numeric_policy must be %s or %s, got %q", NumericTolerant, NumericStrict, c.Input.NumericPolicy))
	}

	switch c.Tiers.Source {
	case SourceScore, SourceDistance:
	default:
		errs = append(errs, fmt.Sprintf("tiers.source must be %s or %s, got %q", SourceScore, SourceDistance, c.Tiers.Source))
	}
	if c.Distance.Workers < 1 {
		errs = append(errs, "distance.workers must be >= 1")
	}
	if !validFormat(c.Output.Format) {
		errs = append(errs, fmt.Sprintf("output.format must be one of %s, got %q", strings.Join(outputFormats, ", "), c.Output.Format))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

func validFormat(f string) bool {
	for _, known := range outputFormats {
		if f == known {
			return true
		}
	}
	return false
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
