package rabbitmq

import (
	"context"
	"time"

	"github.com/satriadi/user-service/internal/application"
	"github.com/satriadi/user-service/pkg/events"
	"github.com/satriadi/user-service/pkg/helpers"
)

const publishTimeout = 5 * time.Second

// Notifier publishes user lifecycle events to a durable RabbitMQ queue.
// It satisfies application.Notifier; the service treats every publish as
// best-effort, so errors returned here are logged, never acted on.
type Notifier struct {
	pub *helpers.RabbitPublisher
}

func NewNotifier(pub *helpers.RabbitPublisher) *Notifier {
	return &Notifier{pub: pub}
}

func (n *Notifier) Notify(ctx context.Context, ev events.UserEvent) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return n.pub.PublishJSON(ctx, ev)
}

var _ application.Notifier = (*Notifier)(nil)
