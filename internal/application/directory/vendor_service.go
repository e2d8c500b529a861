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

// VendorService manages vendor records, including promotion of inbound
// enquiries into vendors.
type VendorService struct {
	*ModuleService[*crm.Vendor]
	enquiries *ModuleService[*crm.Enquiry]
	clock     shared.Clock
}

// NewVendorService creates the vendor service
func NewVendorService(vendors *persistence.PartitionStore[*crm.Vendor], enquiries *persistence.PartitionStore[*crm.Enquiry], registry tenant.Registry, clock shared.Clock, logger *zap.Logger) *VendorService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &VendorService{
		ModuleService: NewModuleService(vendors, registry, lifecycle.New(crm.VendorVocabulary(), clock), logger),
		enquiries:     NewModuleService(enquiries, registry, lifecycle.New(crm.EnquiryVocabulary(), clock), logger),
		clock:         clock,
	}
}

// Enquiries exposes the enquiry module operations
func (s *VendorService) Enquiries() *ModuleService[*crm.Enquiry] {
	return s.enquiries
}

// CreateVendorInput carries the fields for a manual vendor entry
type CreateVendorInput struct {
	OwnerTenant uuid.UUID
	Name        string
	Phone       string
	Email       string
	City        string
	Service     string
	MonthlyFee  decimal.Decimal
}

// Create validates and persists a new vendor record
func (s *VendorService) Create(ctx context.Context, viewer tenant.Viewer, in CreateVendorInput) (*crm.Vendor, error) {
	owner, err := resolveOwner(s.registry, viewer, in.OwnerTenant)
	if err != nil {
		return nil, err
	}
	v, err := crm.NewVendor(owner, in.Name, in.Phone, s.clock.Now())
	if err != nil {
		return nil, err
	}
	v.Email = in.Email
	v.City = in.City
	v.Service = in.Service
	v.MonthlyFee = in.MonthlyFee
	if err := s.Gateway(viewer).WriteBack(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateEnquiryInput carries the fields for an inbound enquiry
type CreateEnquiryInput struct {
	OwnerTenant uuid.UUID
	Name        string
	Phone       string
	Email       string
	Message     string
	Service     string
}

// CreateEnquiry validates and persists a new enquiry record
func (s *VendorService) CreateEnquiry(ctx context.Context, viewer tenant.Viewer, in CreateEnquiryInput) (*crm.Enquiry, error) {
	owner, err := resolveOwner(s.registry, viewer, in.OwnerTenant)
	if err != nil {
		return nil, err
	}
	e, err := crm.NewEnquiry(owner, in.Name, in.Phone, s.clock.Now())
	if err != nil {
		return nil, err
	}
	e.Email = in.Email
	e.Message = in.Message
	e.Service = in.Service
	if err := s.enquiries.Gateway(viewer).WriteBack(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// PromoteEnquiry turns an enquiry into a vendor record in the same tenant.
// The new vendor gets a fresh id and history; the enquiry is transitioned
// to Promoted so it cannot be promoted twice.
func (s *VendorService) PromoteEnquiry(ctx context.Context, viewer tenant.Viewer, enquiryID uuid.UUID) (*crm.Vendor, error) {
	egw := s.enquiries.Gateway(viewer)
	found, err := egw.Find(ctx, enquiryID)
	if err != nil {
		return nil, err
	}
	enquiry := found.Record
	if enquiry.CurrentStatus() == crm.EnquiryStatusPromoted {
		return nil, shared.NewDomainError("INVALID_STATE", "Enquiry already promoted")
	}

	vendor, err := enquiry.PromoteToVendor(s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.Gateway(viewer).WriteBack(ctx, vendor); err != nil {
		return nil, err
	}
	if err := s.enquiries.life.Transition(enquiry, crm.EnquiryStatusPromoted, "", nil); err != nil {
		return nil, err
	}
	if err := egw.WriteBack(ctx, enquiry); err != nil {
		return nil, err
	}
	return vendor, nil
}
