// Package notify carries change signals between independently loaded views
// of the same record store. Delivery is best-effort and at-least-once with
// no ordering guarantee across tenants; subscribers re-read after any
// signal for their module.
package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Handler receives a change signal for one module+tenant pair
type Handler func(module shared.Module, tenant uuid.UUID)

// Notifier publishes and subscribes to partition change signals.
// Subscribe returns a cancel function; after it is called no further
// signals are delivered to that handler.
type Notifier interface {
	Publish(ctx context.Context, module shared.Module, tenant uuid.UUID)
	Subscribe(module shared.Module, h Handler) (cancel func())
}

// Noop returns a Notifier that drops every signal, for contexts that have
// no other views to converge with.
func Noop() Notifier {
	return noopNotifier{}
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, shared.Module, uuid.UUID) {}

func (noopNotifier) Subscribe(shared.Module, Handler) func() {
	return func() {}
}
