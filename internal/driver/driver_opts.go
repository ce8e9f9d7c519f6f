package driver

import "time"

type DriverOpt func(*Driver)

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}

// WithManager registers a manager under name. Names prefix tick errors.
func WithManager(name string, m Manager) DriverOpt {
	return func(d *Driver) {
		d.managers = append(d.managers, namedManager{name: name, Manager: m})
	}
}

// WithMaxFailures sets how many consecutive failed ticks stop the driver.
// Zero keeps the driver running regardless.
func WithMaxFailures(n int) DriverOpt {
	return func(d *Driver) {
		d.maxFailures = n
	}
}
