// Package config provides configuration management for the sharpline pipeline.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Training    TrainingConfig    `mapstructure:"training" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Ensemble    EnsembleConfig    `mapstructure:"ensemble" validate:"required"`
	Backtest    BacktestConfig    `mapstructure:"backtest" validate:"required"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
	CacheTTLSeconds    int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// TrainingConfig represents model training configuration
type TrainingConfig struct {
	Iterations        int      `mapstructure:"iterations" validate:"required,gt=0"`
	LearningRate      float64  `mapstructure:"learning_rate" validate:"required,gt=0"`
	Lambda            float64  `mapstructure:"lambda" validate:"gte=0"`
	HalfLifeDays      float64  `mapstructure:"half_life_days" validate:"required,gt=0"`
	TrainSplit        float64  `mapstructure:"train_split" validate:"required,gt=0,lt=1"`
	MinExamples       int      `mapstructure:"min_examples" validate:"required,gt=0"`
	MinTotalExamples  int      `mapstructure:"min_total_examples" validate:"required,gt=0"`
	MinSpreadExamples int      `mapstructure:"min_spread_examples" validate:"required,gt=0"`
	SigmaFloor        float64  `mapstructure:"sigma_floor" validate:"required,gt=0"`
	Markets           []string `mapstructure:"markets" validate:"required,min=1,markets"`
}

// CalibrationConfig represents probability calibration configuration
type CalibrationConfig struct {
	Method     string `mapstructure:"method" validate:"required,oneof=isotonic none"`
	MinSamples int    `mapstructure:"min_samples" validate:"required,gt=0"`
}

// EnsembleConfig represents model blending configuration
type EnsembleConfig struct {
	BaseWeight     float64 `mapstructure:"base_weight" validate:"gte=0,lte=1"`
	MarketWeight   float64 `mapstructure:"market_weight" validate:"gte=0,lte=1"`
	UnderdogBase   float64 `mapstructure:"underdog_base_weight" validate:"gte=0,lte=1"`
	UnderdogMarket float64 `mapstructure:"underdog_market_weight" validate:"gte=0,lte=1"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate   string    `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string    `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	Stake       float64   `mapstructure:"stake" validate:"required,gt=0"`
	BucketEdges []float64 `mapstructure:"bucket_edges"`
	MinROI      float64   `mapstructure:"min_roi"`
	MaxECE      float64   `mapstructure:"max_ece" validate:"gt=0"`
	MinBets     int       `mapstructure:"min_bets" validate:"required,gt=0"`
	MinEdge     float64   `mapstructure:"min_edge" validate:"gte=0"`
	OutputPath  string    `mapstructure:"output_path"`
}

// SchedulerConfig represents the periodic retraining schedule
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	RetrainCron    string `mapstructure:"retrain_cron"`
	Sport          string `mapstructure:"sport"`
	SeasonLookback int    `mapstructure:"season_lookback"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// BlendWeights returns the configured convex weights for the given market,
// falling back to 70/30 when unset
func (c *Config) BlendWeights(underdog bool) (float64, float64) {
	base, market := c.Ensemble.BaseWeight, c.Ensemble.MarketWeight
	if underdog {
		base, market = c.Ensemble.UnderdogBase, c.Ensemble.UnderdogMarket
	}
	if base+market == 0 {
		if underdog {
			return 0.5, 0.5
		}
		return 0.7, 0.3
	}
	return base, market
}
