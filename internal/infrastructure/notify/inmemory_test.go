package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/crm/backend/internal/domain/shared"
)

func TestInMemoryNotifierDeliversToModuleSubscribers(t *testing.T) {
	n := NewInMemoryNotifier(nil)
	tenantID := uuid.New()

	var vendorSignals, leadSignals []uuid.UUID
	n.Subscribe(shared.ModuleVendors, func(_ shared.Module, tenant uuid.UUID) {
		vendorSignals = append(vendorSignals, tenant)
	})
	n.Subscribe(shared.ModuleLeads, func(_ shared.Module, tenant uuid.UUID) {
		leadSignals = append(leadSignals, tenant)
	})

	n.Publish(context.Background(), shared.ModuleVendors, tenantID)

	assert.Equal(t, []uuid.UUID{tenantID}, vendorSignals)
	assert.Empty(t, leadSignals, "signals stay within their module")
}

func TestInMemoryNotifierCancelStopsDelivery(t *testing.T) {
	n := NewInMemoryNotifier(nil)
	ctx := context.Background()

	count := 0
	cancel := n.Subscribe(shared.ModuleStaff, func(shared.Module, uuid.UUID) {
		count++
	})

	n.Publish(ctx, shared.ModuleStaff, uuid.New())
	cancel()
	n.Publish(ctx, shared.ModuleStaff, uuid.New())

	assert.Equal(t, 1, count)
}

func TestInMemoryNotifierSurvivesPanickingHandler(t *testing.T) {
	n := NewInMemoryNotifier(nil)
	ctx := context.Background()

	delivered := false
	n.Subscribe(shared.ModuleDialer, func(shared.Module, uuid.UUID) {
		panic("handler blew up")
	})
	n.Subscribe(shared.ModuleDialer, func(shared.Module, uuid.UUID) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		n.Publish(ctx, shared.ModuleDialer, uuid.New())
	})
	assert.True(t, delivered, "one bad handler must not starve the rest")
}

func TestNoopNotifierDropsEverything(t *testing.T) {
	n := Noop()
	cancel := n.Subscribe(shared.ModuleEnquiries, func(shared.Module, uuid.UUID) {
		t.Fatal("noop notifier must never deliver")
	})
	n.Publish(context.Background(), shared.ModuleEnquiries, uuid.New())
	cancel()
}
