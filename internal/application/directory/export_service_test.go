package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

func (f *serviceFixture) exportService() (*ExportService, *VendorService, *LeadService) {
	vendors := f.vendorService()
	leads := NewLeadService(
		persistence.NewPartitionStore[*crm.Lead](shared.ModuleLeads, persistence.NewMemoryBlobStore(), nil, nil),
		f.registry, f.clock, nil,
	)
	return NewExportService(vendors, leads, nil), vendors, leads
}

func TestVendorRowsFlattenTaggedSnapshot(t *testing.T) {
	f := newServiceFixture(t)
	exports, vendors, _ := f.exportService()
	ctx := context.Background()

	v, err := vendors.Create(ctx, f.scoped(f.branchA), CreateVendorInput{
		Name: "Sharma Plumbing", Phone: "9876500000", City: "Mumbai", Service: "Plumbing",
	})
	require.NoError(t, err)
	yesterday := serviceNow.AddDate(0, 0, -1)
	_, err = vendors.Disposition(ctx, f.scoped(f.branchA), v.RecordID(), crm.VendorStatusCallback, "Call after lunch", &yesterday)
	require.NoError(t, err)

	header, rows, err := exports.VendorRows(ctx, f.privileged())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tenant", "Name", "Phone", "City", "Service", "Status", "Follow-up", "Last Note"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"Branch A", "Sharma Plumbing", "9876500000", "Mumbai", "Plumbing",
		"Callback", yesterday.Format("2006-01-02"), "Call after lunch",
	}, rows[0])
}

func TestLeadRowsIncludeEstimatedValue(t *testing.T) {
	f := newServiceFixture(t)
	exports, _, leads := f.exportService()
	ctx := context.Background()

	_, err := leads.Create(ctx, f.scoped(f.branchB), CreateLeadInput{
		Name: "Mrs. Rao", Phone: "9876500001", Source: "Website",
	})
	require.NoError(t, err)

	header, rows, err := exports.LeadRows(ctx, f.privileged())
	require.NoError(t, err)
	assert.Contains(t, header, "Estimated Value")
	require.Len(t, rows, 1)
	assert.Equal(t, "Branch B", rows[0][0])
	assert.Equal(t, "Mrs. Rao", rows[0][1])
}
