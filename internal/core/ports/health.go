package ports

import "context"

// HealthChecker is a dependency probe reported by GET /health under its Name.
// Check returns nil while the dependency is usable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
