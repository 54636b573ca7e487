package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/Astemirdum/circulation-service/pkg/logger"
	"github.com/Astemirdum/circulation-service/pkg/postgres"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
}

// Policy holds the circulation policy knobs. None of them are hard-coded
// in the engine; defaults mirror the desk rules the service ships with.
type Policy struct {
	LoanPeriodDays    int           `envconfig:"LOAN_PERIOD_DAYS" default:"14"`
	MaxRenewals       int           `envconfig:"MAX_RENEWALS" default:"2"`
	MaxLoansPerMember int           `envconfig:"MAX_LOANS_PER_MEMBER" default:"5"`
	DailyFineRate     float64       `envconfig:"DAILY_FINE_RATE" default:"1.00"`
	MaxOverdueFine    float64       `envconfig:"MAX_OVERDUE_FINE" default:"30.00"`
	DamageFine        float64       `envconfig:"DAMAGE_FINE" default:"50.00"`
	FineThreshold     float64       `envconfig:"FINE_THRESHOLD" default:"10.00"`
	HoldExpiryDays    int           `envconfig:"HOLD_EXPIRY_DAYS" default:"3"`
	SweepInterval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`
	LockTimeout       time.Duration `envconfig:"LOCK_TIMEOUT" default:"3s"`
}

type Config struct {
	Server   HTTPServer
	Database postgres.Config
	Kafka    kafka.Config
	Policy   Policy
	Log      logger.Log
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
