package framework

import "time"

// Periodic runs a Controller at most once per Period, measured with
// iteration time. Iterations triggered in between are skipped.
type Periodic struct {
	Period     time.Duration
	Controller Controller

	last time.Time
}

// Every wraps ctl as a Periodic.
func Every(period time.Duration, ctl Controller) *Periodic {
	return &Periodic{Period: period, Controller: ctl}
}

// Control implements Controller.
func (p *Periodic) Control(cc ControlContext) error {
	now := cc.Time()
	if !p.last.IsZero() && now.Sub(p.last) < p.Period {
		return nil
	}
	p.last = now
	return p.Controller.Control(cc)
}
