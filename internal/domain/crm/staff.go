package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
)

// Staff statuses
const (
	StaffStatusPending  shared.Status = "Pending"
	StaffStatusActive   shared.Status = "Active"
	StaffStatusOnLeave  shared.Status = "On Leave"
	StaffStatusCallback shared.Status = "Callback"
	StaffStatusFormer   shared.Status = "Former"
)

// StaffVocabulary returns the staff status vocabulary. The callback status
// is used to schedule HR follow-ups (documents pending, reviews due).
func StaffVocabulary() lifecycle.Vocabulary {
	return lifecycle.Vocabulary{
		Untouched: StaffStatusPending,
		Callback:  StaffStatusCallback,
		Statuses: []shared.Status{
			StaffStatusPending, StaffStatusActive, StaffStatusOnLeave,
			StaffStatusCallback, StaffStatusFormer,
		},
		DefaultNotes: map[shared.Status]string{
			StaffStatusActive:   "Onboarding complete.",
			StaffStatusCallback: "Follow-up scheduled.",
			StaffStatusFormer:   "Left the company.",
		},
	}
}

// StaffMember is an employee of the head office or a franchise
type StaffMember struct {
	shared.RecordBase
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	RoleTitle string `json:"role_title,omitempty"`
	Branch    string `json:"branch,omitempty"`
}

// NewStaffMember creates a staff record owned by the given tenant
func NewStaffMember(owner uuid.UUID, name, phone string, now time.Time) (*StaffMember, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewValidationError("name")
	}
	if phone == "" {
		return nil, shared.NewValidationError("phone")
	}
	return &StaffMember{
		RecordBase: shared.NewRecordBase(owner, StaffStatusPending, now),
		Name:       name,
		Phone:      phone,
	}, nil
}

var _ shared.ManagedRecord = (*StaffMember)(nil)
