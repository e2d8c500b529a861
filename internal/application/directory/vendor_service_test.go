package directory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

var serviceNow = time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

type serviceFixture struct {
	registry tenant.Registry
	head     tenant.Tenant
	branchA  tenant.Tenant
	branchB  tenant.Tenant
	clock    shared.Clock
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		head:    tenant.Tenant{ID: uuid.New(), Name: "Head Office", Kind: tenant.KindHead, Active: true},
		branchA: tenant.Tenant{ID: uuid.New(), Name: "Branch A", Kind: tenant.KindFranchise, Active: true},
		branchB: tenant.Tenant{ID: uuid.New(), Name: "Branch B", Kind: tenant.KindFranchise, Active: true},
		clock:   shared.FixedClock(serviceNow),
	}
	registry, err := tenant.NewStaticRegistry([]tenant.Tenant{f.head, f.branchA, f.branchB})
	require.NoError(t, err)
	f.registry = registry
	return f
}

func (f *serviceFixture) vendorService() *VendorService {
	vendors := persistence.NewPartitionStore[*crm.Vendor](shared.ModuleVendors, persistence.NewMemoryBlobStore(), nil, nil)
	enquiries := persistence.NewPartitionStore[*crm.Enquiry](shared.ModuleEnquiries, persistence.NewMemoryBlobStore(), nil, nil)
	return NewVendorService(vendors, enquiries, f.registry, f.clock, nil)
}

func (f *serviceFixture) privileged() tenant.Viewer {
	return tenant.Viewer{TenantID: f.head.ID, Role: tenant.RolePrivileged}
}

func (f *serviceFixture) scoped(t tenant.Tenant) tenant.Viewer {
	return tenant.Viewer{TenantID: t.ID, Role: tenant.RoleScoped}
}

func TestVendorCreateLandsInResolvedPartition(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.vendorService()
	ctx := context.Background()

	// Privileged viewer may create on behalf of any known tenant
	v, err := svc.Create(ctx, f.privileged(), CreateVendorInput{
		OwnerTenant: f.branchA.ID,
		Name:        "Sharma Plumbing",
		Phone:       "9876500000",
		MonthlyFee:  decimal.NewFromInt(999),
	})
	require.NoError(t, err)
	assert.Equal(t, f.branchA.ID, v.Owner())

	// Scoped viewer writes into its own partition regardless of the request
	v, err = svc.Create(ctx, f.scoped(f.branchB), CreateVendorInput{
		OwnerTenant: f.branchA.ID,
		Name:        "Verma Electricals",
		Phone:       "9876500001",
	})
	require.NoError(t, err)
	assert.Equal(t, f.branchB.ID, v.Owner())

	all, err := svc.List(ctx, f.privileged())
	require.NoError(t, err)
	require.Len(t, all, 2)

	own, err := svc.List(ctx, f.scoped(f.branchB))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Verma Electricals", own[0].Record.Name)
}

func TestVendorCreateUnknownOwnerFails(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.vendorService()

	_, err := svc.Create(context.Background(), f.privileged(), CreateVendorInput{
		OwnerTenant: uuid.New(),
		Name:        "Stray",
		Phone:       "9876500000",
	})
	require.ErrorIs(t, err, shared.ErrUnknownTenant)
}

func TestVendorDispositionAppendsHistoryAndPersists(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.vendorService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	v, err := svc.Create(ctx, viewer, CreateVendorInput{Name: "Sharma Plumbing", Phone: "9876500000"})
	require.NoError(t, err)

	updated, err := svc.Disposition(ctx, viewer, v.RecordID(), crm.VendorStatusInterested, "Wants the premium plan", nil)
	require.NoError(t, err)
	assert.Equal(t, crm.VendorStatusInterested, updated.CurrentStatus())

	all, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, all, 1)
	stored := all[0].Record
	assert.Equal(t, crm.VendorStatusInterested, stored.CurrentStatus())
	require.Len(t, stored.History(), 2)
	assert.Equal(t, "Wants the premium plan", stored.History()[0].Note)
}

func TestVendorDispositionCallbackNeedsFollowUp(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.vendorService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	v, err := svc.Create(ctx, viewer, CreateVendorInput{Name: "Sharma Plumbing", Phone: "9876500000"})
	require.NoError(t, err)

	_, err = svc.Disposition(ctx, viewer, v.RecordID(), crm.VendorStatusCallback, "", nil)
	require.ErrorIs(t, err, shared.ErrMissingFollowUp)
}

func TestVendorDeleteIsPermanent(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.vendorService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	v, err := svc.Create(ctx, viewer, CreateVendorInput{Name: "Sharma Plumbing", Phone: "9876500000"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, viewer, v.RecordID()))

	all, err := svc.List(ctx, viewer)
	require.NoError(t, err)
	assert.Empty(t, all)

	err = svc.Delete(ctx, viewer, v.RecordID())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPromoteEnquiryCreatesVendorOnce(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.vendorService()
	ctx := context.Background()
	viewer := f.scoped(f.branchA)

	e, err := svc.CreateEnquiry(ctx, viewer, CreateEnquiryInput{
		Name:    "Gupta Cleaning",
		Phone:   "9876500002",
		Email:   "gupta@example.com",
		Service: "Deep cleaning",
	})
	require.NoError(t, err)

	vendor, err := svc.PromoteEnquiry(ctx, viewer, e.RecordID())
	require.NoError(t, err)
	assert.Equal(t, "Gupta Cleaning", vendor.Name)
	assert.Equal(t, "gupta@example.com", vendor.Email)
	assert.Equal(t, f.branchA.ID, vendor.Owner())
	assert.NotEqual(t, e.RecordID(), vendor.RecordID())

	enquiries, err := svc.Enquiries().List(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, enquiries, 1)
	assert.Equal(t, crm.EnquiryStatusPromoted, enquiries[0].Record.CurrentStatus())

	_, err = svc.PromoteEnquiry(ctx, viewer, e.RecordID())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
