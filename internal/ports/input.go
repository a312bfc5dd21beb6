package ports

import "context"

// HourPort is what the HTTP server triggers on /hour.
type HourPort interface {
	Execute(ctx context.Context) (*CommandResult, error)
}
