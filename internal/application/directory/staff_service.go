package directory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

// StaffService manages employee records
type StaffService struct {
	*ModuleService[*crm.StaffMember]
	clock shared.Clock
}

// NewStaffService creates the staff service
func NewStaffService(staff *persistence.PartitionStore[*crm.StaffMember], registry tenant.Registry, clock shared.Clock, logger *zap.Logger) *StaffService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &StaffService{
		ModuleService: NewModuleService(staff, registry, lifecycle.New(crm.StaffVocabulary(), clock), logger),
		clock:         clock,
	}
}

// CreateStaffInput carries the fields for a new staff record
type CreateStaffInput struct {
	OwnerTenant uuid.UUID
	Name        string
	Phone       string
	RoleTitle   string
	Branch      string
}

// Create validates and persists a new staff record
func (s *StaffService) Create(ctx context.Context, viewer tenant.Viewer, in CreateStaffInput) (*crm.StaffMember, error) {
	owner, err := resolveOwner(s.registry, viewer, in.OwnerTenant)
	if err != nil {
		return nil, err
	}
	m, err := crm.NewStaffMember(owner, in.Name, in.Phone, s.clock.Now())
	if err != nil {
		return nil, err
	}
	m.RoleTitle = in.RoleTitle
	m.Branch = in.Branch
	if err := s.Gateway(viewer).WriteBack(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
