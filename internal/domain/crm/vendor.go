// Package crm defines the concrete business record types: vendors, leads,
// staff, dialer contacts and enquiries. Each embeds shared.RecordBase and
// declares its own status vocabulary.
package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
)

// Vendor statuses
const (
	VendorStatusPending       shared.Status = "Pending"
	VendorStatusInterested    shared.Status = "Interested"
	VendorStatusNotInterested shared.Status = "Not Interested"
	VendorStatusNoAnswer      shared.Status = "No Answer"
	VendorStatusCallback      shared.Status = "Callback"
	VendorStatusOnboarded     shared.Status = "Onboarded"
	VendorStatusDropped       shared.Status = "Dropped"
)

// VendorVocabulary returns the vendor status vocabulary
func VendorVocabulary() lifecycle.Vocabulary {
	return lifecycle.Vocabulary{
		Untouched: VendorStatusPending,
		Callback:  VendorStatusCallback,
		Statuses: []shared.Status{
			VendorStatusPending, VendorStatusInterested, VendorStatusNotInterested,
			VendorStatusNoAnswer, VendorStatusCallback, VendorStatusOnboarded,
			VendorStatusDropped,
		},
		DefaultNotes: map[shared.Status]string{
			VendorStatusNoAnswer:      "Call attempted, no answer.",
			VendorStatusNotInterested: "Vendor declined the offer.",
			VendorStatusCallback:      "Callback scheduled.",
			VendorStatusOnboarded:     "Vendor onboarded.",
		},
	}
}

// Vendor is a service provider a franchise works with or is recruiting
type Vendor struct {
	shared.RecordBase
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email,omitempty"`
	City       string          `json:"city,omitempty"`
	Service    string          `json:"service,omitempty"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
}

// NewVendor creates a vendor owned by the given tenant. Name and phone
// are required.
func NewVendor(owner uuid.UUID, name, phone string, now time.Time) (*Vendor, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewValidationError("name")
	}
	if phone == "" {
		return nil, shared.NewValidationError("phone")
	}
	return &Vendor{
		RecordBase: shared.NewRecordBase(owner, VendorStatusPending, now),
		Name:       name,
		Phone:      phone,
		MonthlyFee: decimal.Zero,
	}, nil
}

var _ shared.ManagedRecord = (*Vendor)(nil)
