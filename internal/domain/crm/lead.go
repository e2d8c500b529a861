package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
)

// Lead statuses
const (
	LeadStatusPending   shared.Status = "Pending"
	LeadStatusQualified shared.Status = "Qualified"
	LeadStatusConverted shared.Status = "Converted"
	LeadStatusLost      shared.Status = "Lost"
	LeadStatusNoAnswer  shared.Status = "No Answer"
	LeadStatusCallback  shared.Status = "Callback"
)

// LeadVocabulary returns the lead status vocabulary
func LeadVocabulary() lifecycle.Vocabulary {
	return lifecycle.Vocabulary{
		Untouched: LeadStatusPending,
		Callback:  LeadStatusCallback,
		Statuses: []shared.Status{
			LeadStatusPending, LeadStatusQualified, LeadStatusConverted,
			LeadStatusLost, LeadStatusNoAnswer, LeadStatusCallback,
		},
		DefaultNotes: map[shared.Status]string{
			LeadStatusNoAnswer: "Call attempted, no answer.",
			LeadStatusLost:     "Lead marked lost.",
			LeadStatusCallback: "Callback scheduled.",
		},
	}
}

// Lead is a prospective customer
type Lead struct {
	shared.RecordBase
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty"`
	Source         string          `json:"source,omitempty"`
	Requirement    string          `json:"requirement,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
}

// NewLead creates a lead owned by the given tenant. Name and phone are
// required.
func NewLead(owner uuid.UUID, name, phone string, now time.Time) (*Lead, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewValidationError("name")
	}
	if phone == "" {
		return nil, shared.NewValidationError("phone")
	}
	return &Lead{
		RecordBase:     shared.NewRecordBase(owner, LeadStatusPending, now),
		Name:           name,
		Phone:          phone,
		EstimatedValue: decimal.Zero,
	}, nil
}

var _ shared.ManagedRecord = (*Lead)(nil)
