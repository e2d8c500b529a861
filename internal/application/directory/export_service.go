package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/crm/backend/internal/application/aggregate"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
)

// ExportService assembles tagged record snapshots and flat rows for an
// external CSV/file collaborator. It owns no format; it only hands over
// data.
type ExportService struct {
	vendors *VendorService
	leads   *LeadService
	logger  *zap.Logger
}

// NewExportService creates the export service
func NewExportService(vendors *VendorService, leads *LeadService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{vendors: vendors, leads: leads, logger: logger}
}

// VendorSnapshot returns the viewer's aggregated vendor records
func (s *ExportService) VendorSnapshot(ctx context.Context, viewer tenant.Viewer) ([]aggregate.Aggregated[*crm.Vendor], error) {
	return s.vendors.List(ctx, viewer)
}

// VendorRows flattens the vendor snapshot into header + rows
func (s *ExportService) VendorRows(ctx context.Context, viewer tenant.Viewer) ([]string, [][]string, error) {
	snapshot, err := s.VendorSnapshot(ctx, viewer)
	if err != nil {
		return nil, nil, err
	}
	header := []string{"Tenant", "Name", "Phone", "City", "Service", "Status", "Follow-up", "Last Note"}
	rows := make([][]string, 0, len(snapshot))
	for _, a := range snapshot {
		v := a.Record
		rows = append(rows, []string{
			a.TenantTag, v.Name, v.Phone, v.City, v.Service,
			string(v.CurrentStatus()), formatFollowUp(v), lastNote(v),
		})
	}
	return header, rows, nil
}

// LeadRows flattens the lead snapshot into header + rows
func (s *ExportService) LeadRows(ctx context.Context, viewer tenant.Viewer) ([]string, [][]string, error) {
	snapshot, err := s.leads.List(ctx, viewer)
	if err != nil {
		return nil, nil, err
	}
	header := []string{"Tenant", "Name", "Phone", "Source", "Estimated Value", "Status", "Follow-up", "Last Note"}
	rows := make([][]string, 0, len(snapshot))
	for _, a := range snapshot {
		l := a.Record
		rows = append(rows, []string{
			a.TenantTag, l.Name, l.Phone, l.Source, l.EstimatedValue.String(),
			string(l.CurrentStatus()), formatFollowUp(l), lastNote(l),
		})
	}
	return header, rows, nil
}

func formatFollowUp(r shared.Record) string {
	if at := r.FollowUpAt(); at != nil {
		return at.Format("2006-01-02")
	}
	return ""
}

func lastNote(r shared.Record) string {
	if h := r.History(); len(h) > 0 {
		return h[0].Note
	}
	return ""
}
