package ga

import "time"

// chronometer is a one-shot stopwatch: Tic starts it, Toc reports elapsed
// time and fails if Tic was never called. Grounded on openGA's Chronometer.
type chronometer struct {
	start       time.Time
	initialized bool
}

func (c *chronometer) tic() {
	c.start = time.Now()
	c.initialized = true
}

func (c *chronometer) toc() (time.Duration, error) {
	if !c.initialized {
		return 0, ErrChronometerNotTic
	}
	return time.Since(c.start), nil
}
