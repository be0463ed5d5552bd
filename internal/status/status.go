// Package status summarises the health of the upstream services the site
// renders from.
package status

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	StateOperational = "operational"
	StateDegraded    = "degraded"
	StateDisabled    = "disabled"
)

// Summary captures the overall state and one entry per upstream.
type Summary struct {
	State      string      `json:"state"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Components []Component `json:"components"`
}

// Component is the state of an individual upstream.
type Component struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Probe checks one upstream. A nil Check marks the upstream as disabled.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Checker runs probes concurrently and reuses the summary for ttl.
type Checker struct {
	probes  []Probe
	timeout time.Duration
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	cached  Summary
	expires time.Time
}

// NewChecker builds a Checker. Each probe gets at most timeout.
func NewChecker(probes []Probe, timeout, ttl time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		probes:  probes,
		timeout: timeout,
		ttl:     ttl,
		now:     time.Now,
	}
}

// FetchSummary returns the cached summary while fresh, else probes again.
func (c *Checker) FetchSummary(ctx context.Context) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now().Before(c.expires) {
		return cloneSummary(c.cached)
	}

	components := make([]Component, len(c.probes))
	var g errgroup.Group
	for i, p := range c.probes {
		g.Go(func() error {
			components[i] = c.run(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{
		State:      StateOperational,
		UpdatedAt:  c.now().UTC(),
		Components: components,
	}
	for _, comp := range components {
		if comp.Status == StateDegraded {
			summary.State = StateDegraded
			break
		}
	}
	c.cached = summary
	c.expires = c.now().Add(c.ttl)
	return cloneSummary(summary)
}

func (c *Checker) run(ctx context.Context, p Probe) Component {
	if p.Check == nil {
		return Component{Name: p.Name, Status: StateDisabled}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := c.now()
	err := p.Check(ctx)
	comp := Component{
		Name:    p.Name,
		Status:  StateOperational,
		Latency: c.now().Sub(start).Round(time.Millisecond).String(),
	}
	if err != nil {
		comp.Status = StateDegraded
		comp.Error = err.Error()
	}
	return comp
}

func cloneSummary(src Summary) Summary {
	cp := src
	if len(src.Components) > 0 {
		cp.Components = make([]Component, len(src.Components))
		copy(cp.Components, src.Components)
	}
	return cp
}
