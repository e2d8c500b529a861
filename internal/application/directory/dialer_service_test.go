package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

func (f *serviceFixture) dialerService() *DialerService {
	contacts := persistence.NewPartitionStore[*crm.DialerContact](shared.ModuleDialer, persistence.NewMemoryBlobStore(), nil, nil)
	return NewDialerService(contacts, f.registry, f.clock, nil)
}

func TestImportIsAllOrNothing(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	n, err := svc.Import(ctx, viewer, []ContactInput{
		{Name: "Asha", Phone: "9876500000"},
		{Name: "", Phone: "9876500001"},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Zero(t, n)

	all, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	assert.Empty(t, all, "a rejected batch must leave nothing behind")
}

func TestImportAppendsToExistingList(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	n, err := svc.Import(ctx, viewer, []ContactInput{
		{Name: "Asha", Phone: "9876500000", Campaign: "Spring", Area: "Andheri"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.Import(ctx, viewer, []ContactInput{
		{Name: "Binod", Phone: "9876500001"},
		{Name: "Chitra", Phone: "9876500002"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Asha", all[0].Record.Name)
	assert.Equal(t, "Spring", all[0].Record.Campaign)
}

func TestCampaignSessionFlow(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	_, err := svc.Import(ctx, viewer, []ContactInput{
		{Name: "Asha", Phone: "9876500000"},
		{Name: "Binod", Phone: "9876500001"},
		{Name: "Chitra", Phone: "9876500002"},
	})
	require.NoError(t, err)

	first, active, err := svc.StartSession(ctx, viewer)
	require.NoError(t, err)
	require.True(t, active)

	current, ok := svc.Current(viewer)
	require.True(t, ok)
	assert.Equal(t, first, current)

	next, active, err := svc.Disposition(ctx, viewer, crm.DialerStatusNoAnswer, "", nil)
	require.NoError(t, err)
	require.True(t, active)
	assert.NotEqual(t, first, next)

	// The disposition was persisted with the module's canned note
	all, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	for _, a := range all {
		if a.Record.RecordID() == first {
			assert.Equal(t, crm.DialerStatusNoAnswer, a.Record.CurrentStatus())
			assert.Equal(t, "Call attempted, no answer.", a.Record.History()[0].Note)
		}
	}

	_, active, err = svc.Disposition(ctx, viewer, crm.DialerStatusInterested, "Wants a demo", nil)
	require.NoError(t, err)
	require.True(t, active)

	_, active, err = svc.Disposition(ctx, viewer, crm.DialerStatusDone, "", nil)
	require.NoError(t, err)
	assert.False(t, active, "session ends after the last untouched contact")

	_, ok = svc.Current(viewer)
	assert.False(t, ok)

	_, _, err = svc.Disposition(ctx, viewer, crm.DialerStatusDone, "", nil)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_SESSION", domainErr.Code)
}

func TestSessionsAreIsolatedPerViewerTenant(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()
	ctx := context.Background()
	viewerA := f.scoped(f.branchA)
	viewerB := f.scoped(f.branchB)

	_, err := svc.Import(ctx, viewerA, []ContactInput{{Name: "Asha", Phone: "9876500000"}})
	require.NoError(t, err)
	_, err = svc.Import(ctx, viewerB, []ContactInput{{Name: "Binod", Phone: "9876500001"}})
	require.NoError(t, err)

	idA, active, err := svc.StartSession(ctx, viewerA)
	require.NoError(t, err)
	require.True(t, active)

	idB, active, err := svc.StartSession(ctx, viewerB)
	require.NoError(t, err)
	require.True(t, active)
	assert.NotEqual(t, idA, idB)

	svc.EndSession(viewerA)
	_, ok := svc.Current(viewerA)
	assert.False(t, ok)
	currentB, ok := svc.Current(viewerB)
	require.True(t, ok)
	assert.Equal(t, idB, currentB)
}

func TestJumpDistinguishesNoSessionFromUnknownContact(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	_, err := svc.Import(ctx, viewer, []ContactInput{
		{Name: "Asha", Phone: "9876500000"},
		{Name: "Binod", Phone: "9876500001"},
	})
	require.NoError(t, err)

	err = svc.Jump(viewer, uuid.New())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_SESSION", domainErr.Code)

	_, active, err := svc.StartSession(ctx, viewer)
	require.NoError(t, err)
	require.True(t, active)

	require.ErrorIs(t, svc.Jump(viewer, uuid.New()), shared.ErrNotFound)

	all, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	target := all[1].Record.RecordID()
	require.NoError(t, svc.Jump(viewer, target))
	current, ok := svc.Current(viewer)
	require.True(t, ok)
	assert.Equal(t, target, current)
}

func TestStartSessionWithEmptyListStaysIdle(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()

	_, active, err := svc.StartSession(context.Background(), f.scoped(f.branchA))
	require.NoError(t, err)
	assert.False(t, active)
}

func TestDueFollowUpsUsesCallbackPool(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.dialerService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	_, err := svc.Import(ctx, viewer, []ContactInput{
		{Name: "Asha", Phone: "9876500000"},
		{Name: "Binod", Phone: "9876500001"},
	})
	require.NoError(t, err)

	_, active, err := svc.StartSession(ctx, viewer)
	require.NoError(t, err)
	require.True(t, active)

	yesterday := serviceNow.AddDate(0, 0, -1)
	_, _, err = svc.Disposition(ctx, viewer, crm.DialerStatusCallback, "", &yesterday)
	require.NoError(t, err)

	due, err := svc.DueFollowUps(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Asha", due[0].(*crm.DialerContact).Name)

	due, err = svc.DueFollowUps(ctx, f.scoped(f.branchB))
	require.NoError(t, err)
	assert.Empty(t, due)
}
