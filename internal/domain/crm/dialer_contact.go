package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
)

// Dialer contact statuses
const (
	DialerStatusPending       shared.Status = "Pending"
	DialerStatusInterested    shared.Status = "Interested"
	DialerStatusNotInterested shared.Status = "Not Interested"
	DialerStatusNoAnswer      shared.Status = "No Answer"
	DialerStatusCallback      shared.Status = "Callback"
	DialerStatusWrongNumber   shared.Status = "Wrong Number"
	DialerStatusDone          shared.Status = "Done"
)

// DialerVocabulary returns the dialer contact status vocabulary
func DialerVocabulary() lifecycle.Vocabulary {
	return lifecycle.Vocabulary{
		Untouched: DialerStatusPending,
		Callback:  DialerStatusCallback,
		Statuses: []shared.Status{
			DialerStatusPending, DialerStatusInterested, DialerStatusNotInterested,
			DialerStatusNoAnswer, DialerStatusCallback, DialerStatusWrongNumber,
			DialerStatusDone,
		},
		DefaultNotes: map[shared.Status]string{
			DialerStatusNoAnswer:      "Call attempted, no answer.",
			DialerStatusNotInterested: "Contact not interested.",
			DialerStatusWrongNumber:   "Number does not belong to the contact.",
			DialerStatusCallback:      "Callback scheduled.",
		},
	}
}

// DialerContact is one entry in an outreach calling list
type DialerContact struct {
	shared.RecordBase
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Campaign string `json:"campaign,omitempty"`
	Area     string `json:"area,omitempty"`
}

// NewDialerContact creates a dialer contact owned by the given tenant
func NewDialerContact(owner uuid.UUID, name, phone string, now time.Time) (*DialerContact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewValidationError("name")
	}
	if phone == "" {
		return nil, shared.NewValidationError("phone")
	}
	return &DialerContact{
		RecordBase: shared.NewRecordBase(owner, DialerStatusPending, now),
		Name:       name,
		Phone:      phone,
	}, nil
}

var _ shared.ManagedRecord = (*DialerContact)(nil)
