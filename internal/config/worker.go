package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// WorkerEnv carries the flat environment overrides the worker binary
// accepts in container deployments, e.g. WORKER_SWEEP_INTERVAL=30m.
type WorkerEnv struct {
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL"`
	HealthPort    int           `envconfig:"HEALTH_PORT"`
}

// LoadWorker loads the shared configuration and applies worker-specific
// environment overrides on top of it.
func LoadWorker() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	var env WorkerEnv
	if err := envconfig.Process("WORKER", &env); err != nil {
		return nil, err
	}

	if env.SweepInterval > 0 {
		cfg.Worker.SweepInterval = env.SweepInterval
	}
	if env.HealthPort > 0 {
		cfg.Worker.HealthPort = env.HealthPort
	}

	return cfg, nil
}
