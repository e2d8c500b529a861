package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

// LeadService manages prospective customer records
type LeadService struct {
	*ModuleService[*crm.Lead]
	clock shared.Clock
}

// NewLeadService creates the lead service
func NewLeadService(leads *persistence.PartitionStore[*crm.Lead], registry tenant.Registry, clock shared.Clock, logger *zap.Logger) *LeadService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &LeadService{
		ModuleService: NewModuleService(leads, registry, lifecycle.New(crm.LeadVocabulary(), clock), logger),
		clock:         clock,
	}
}

// CreateLeadInput carries the fields for a new lead
type CreateLeadInput struct {
	OwnerTenant    uuid.UUID
	Name           string
	Phone          string
	Email          string
	Source         string
	Requirement    string
	EstimatedValue decimal.Decimal
}

// Create validates and persists a new lead record
func (s *LeadService) Create(ctx context.Context, viewer tenant.Viewer, in CreateLeadInput) (*crm.Lead, error) {
	owner, err := resolveOwner(s.registry, viewer, in.OwnerTenant)
	if err != nil {
		return nil, err
	}
	l, err := crm.NewLead(owner, in.Name, in.Phone, s.clock.Now())
	if err != nil {
		return nil, err
	}
	l.Email = in.Email
	l.Source = in.Source
	l.Requirement = in.Requirement
	l.EstimatedValue = in.EstimatedValue
	if err := s.Gateway(viewer).WriteBack(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
