package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval        string        `json:"tick_interval"`
	Workers             int           `json:"workers"`
	MaxCorrectionRounds int           `json:"max_correction_rounds"`
	Storage             StorageConfig `json:"storage"`
	Nats                NatsConfig    `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	if c.Workers < 0 {
		el.Add(fmt.Errorf("workers must not be negative"))
	}
	if c.MaxCorrectionRounds < 0 {
		el.Add(fmt.Errorf("max_correction_rounds must not be negative"))
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}
