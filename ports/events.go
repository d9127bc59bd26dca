package ports

import (
	"context"

	"github.com/layer-3/marketauth/core"
)

// EventPublisher publishes events to notify other services
type EventPublisher interface {
	PublishLogin(ctx context.Context, event core.LoginEvent) error
}
