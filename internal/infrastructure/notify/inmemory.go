package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/shared"
)

// InMemoryNotifier implements Notifier with in-process fan-out. Handlers
// run synchronously on the publishing goroutine; a panicking handler is
// recovered and logged without affecting the others.
type InMemoryNotifier struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[shared.Module]map[int]Handler
	logger   *zap.Logger
}

// NewInMemoryNotifier creates a new in-process notifier
func NewInMemoryNotifier(logger *zap.Logger) *InMemoryNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryNotifier{
		handlers: make(map[shared.Module]map[int]Handler),
		logger:   logger,
	}
}

// Publish delivers the signal to every live subscriber of the module
func (n *InMemoryNotifier) Publish(_ context.Context, module shared.Module, tenant uuid.UUID) {
	n.mu.RLock()
	snapshot := make([]Handler, 0, len(n.handlers[module]))
	for _, h := range n.handlers[module] {
		snapshot = append(snapshot, h)
	}
	n.mu.RUnlock()

	for _, h := range snapshot {
		n.dispatch(h, module, tenant)
	}
}

// Subscribe registers a handler for one module's change signals
func (n *InMemoryNotifier) Subscribe(module shared.Module, h Handler) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	if n.handlers[module] == nil {
		n.handlers[module] = make(map[int]Handler)
	}
	n.handlers[module][id] = h
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.handlers[module], id)
		n.mu.Unlock()
	}
}

func (n *InMemoryNotifier) dispatch(h Handler, module shared.Module, tenant uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("change handler panicked",
				zap.String("module", module.String()),
				zap.String("tenant_id", tenant.String()),
				zap.Any("panic", r),
			)
		}
	}()
	h(module, tenant)
}

var _ Notifier = (*InMemoryNotifier)(nil)
