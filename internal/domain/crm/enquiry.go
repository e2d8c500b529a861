package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
)

// Enquiry statuses
const (
	EnquiryStatusNew       shared.Status = "New"
	EnquiryStatusContacted shared.Status = "Contacted"
	EnquiryStatusCallback  shared.Status = "Callback"
	EnquiryStatusPromoted  shared.Status = "Promoted"
	EnquiryStatusClosed    shared.Status = "Closed"
)

// EnquiryVocabulary returns the enquiry status vocabulary
func EnquiryVocabulary() lifecycle.Vocabulary {
	return lifecycle.Vocabulary{
		Untouched: EnquiryStatusNew,
		Callback:  EnquiryStatusCallback,
		Statuses: []shared.Status{
			EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusCallback,
			EnquiryStatusPromoted, EnquiryStatusClosed,
		},
		DefaultNotes: map[shared.Status]string{
			EnquiryStatusContacted: "Enquiry contacted.",
			EnquiryStatusCallback:  "Callback scheduled.",
			EnquiryStatusPromoted:  "Promoted to vendor.",
			EnquiryStatusClosed:    "Enquiry closed.",
		},
	}
}

// Enquiry is an inbound expression of interest from a potential vendor
type Enquiry struct {
	shared.RecordBase
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}

// NewEnquiry creates an enquiry owned by the given tenant
func NewEnquiry(owner uuid.UUID, name, phone string, now time.Time) (*Enquiry, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewValidationError("name")
	}
	if phone == "" {
		return nil, shared.NewValidationError("phone")
	}
	return &Enquiry{
		RecordBase: shared.NewRecordBase(owner, EnquiryStatusNew, now),
		Name:       name,
		Phone:      phone,
	}, nil
}

// PromoteToVendor creates a vendor record from the enquiry's details.
// The vendor gets a fresh id and history seed and stays in the enquiry's
// owning tenant. The enquiry itself is not modified here; callers record
// the promotion through a lifecycle transition.
func (e *Enquiry) PromoteToVendor(now time.Time) (*Vendor, error) {
	v, err := NewVendor(e.Owner(), e.Name, e.Phone, now)
	if err != nil {
		return nil, err
	}
	v.Email = e.Email
	v.Service = e.Service
	return v, nil
}

var _ shared.ManagedRecord = (*Enquiry)(nil)
