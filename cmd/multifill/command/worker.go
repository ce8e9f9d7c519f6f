package command

import (
	"fmt"

	"github.com/pixil98/go-multifill/internal/driver"
	"github.com/pixil98/go-multifill/internal/generate"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	seeds, err := cfg.Storage.Seeds.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating seed store: %w", err)
	}
	results, err := cfg.Storage.Results.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating result store: %w", err)
	}

	genOpts := []generate.GeneratorOpt{generate.WithOptionsDir(cfg.Storage.optionsDir())}
	if cfg.MaxCorrectionRounds > 0 {
		genOpts = append(genOpts, generate.WithMaxRounds(cfg.MaxCorrectionRounds))
	}

	mgrOpts := []generate.ManagerOpt{generate.WithSpoilerDir(cfg.Storage.Spoilers)}
	if cfg.Workers > 0 {
		mgrOpts = append(mgrOpts, generate.WithWorkers(cfg.Workers))
	}

	workers := service.WorkerList{}

	if !cfg.Nats.Disabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		mgrOpts = append(mgrOpts, generate.WithPublisher(ns))
		workers["nats"] = ns
	}

	manager := generate.NewManager(seeds, results, generate.NewGenerator(genOpts...), mgrOpts...)

	// Setup the seed driver
	workers["driver"] = driver.NewDriver(
		driver.WithManager("generate", manager),
		driver.WithTickLength(cfg.tickLength()),
	)

	return workers, nil
}
