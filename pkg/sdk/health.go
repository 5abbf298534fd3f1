package plantdex

import (
	"context"
	"errors"
	"time"

	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
)

// HealthStatus is the result of Client.Health. The embedded client has no
// cache, so Checks holds only "database".
type HealthStatus struct {
	Status string            // "ok" or "error"
	Checks map[string]string // component: "ok" or "error"
}

// OK reports whether every component answered.
func (h HealthStatus) OK() bool { return h.Status == string(healthuc.Healthy) }

// Health pings the database and reports the outcome. It never returns an error;
// inspect Status instead.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for component, result := range report.Checks {
		checks[component] = string(result)
	}
	h := HealthStatus{Status: string(report.Status), Checks: checks}
	var err error
	if !h.OK() {
		err = errors.New("unhealthy: " + h.Status)
	}
	c.obs.observe(resourceClient, "health", start, err)
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
