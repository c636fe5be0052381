package server

import "context"

// HealthChecker answers the liveness probe. Implementations should be
// cheap; the route is polled by the platform.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckerFunc adapts a plain function to HealthChecker.
type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// AlwaysHealthy is the checker for deployments without a database,
// such as the in-memory demo mode.
var AlwaysHealthy = HealthCheckerFunc(func(context.Context) bool { return true })
