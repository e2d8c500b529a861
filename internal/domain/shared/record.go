package shared

import (
	"time"

	"github.com/google/uuid"
)

// Status is a module-defined record status value
type Status string

// HistoryEntry is one immutable disposition log entry. Entries are kept
// newest first and are never mutated or removed after creation.
type HistoryEntry struct {
	Timestamp       time.Time `json:"timestamp"`
	ResultingStatus Status    `json:"resulting_status"`
	Note            string    `json:"note"`
}

// Record is the read-only contract every business record satisfies
type Record interface {
	RecordID() uuid.UUID
	Owner() uuid.UUID
	CurrentStatus() Status
	History() []HistoryEntry
	CurrentNote() string
	FollowUpAt() *time.Time
}

// ManagedRecord extends Record with the mutators the lifecycle and
// partition layers need. Status-managed fields must only change through
// these, never by direct field edits.
type ManagedRecord interface {
	Record
	SetStatus(Status)
	AppendHistory(HistoryEntry)
	SetCurrentNote(string)
	SetFollowUpAt(*time.Time)
	Touch(time.Time)
}

// RecordBase provides the shared record shape. Concrete module records
// embed it and add their business fields.
type RecordBase struct {
	ID          uuid.UUID      `json:"id"`
	OwnerTenant uuid.UUID      `json:"owner_tenant"`
	Status      Status         `json:"status"`
	Note        string         `json:"note,omitempty"`
	FollowUp    *time.Time     `json:"follow_up,omitempty"`
	Entries     []HistoryEntry `json:"history"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewRecordBase creates a record base owned by the given tenant with an
// initial status and a seed history entry recording the creation.
func NewRecordBase(owner uuid.UUID, status Status, now time.Time) RecordBase {
	return RecordBase{
		ID:          uuid.New(),
		OwnerTenant: owner,
		Status:      status,
		Entries: []HistoryEntry{{
			Timestamp:       now,
			ResultingStatus: status,
			Note:            "Record created",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordID returns the stable record identifier
func (r *RecordBase) RecordID() uuid.UUID { return r.ID }

// Owner returns the owning tenant, set at creation and immutable
func (r *RecordBase) Owner() uuid.UUID { return r.OwnerTenant }

// CurrentStatus returns the record's status
func (r *RecordBase) CurrentStatus() Status { return r.Status }

// History returns the disposition log, newest first
func (r *RecordBase) History() []HistoryEntry { return r.Entries }

// CurrentNote returns the free-text working note
func (r *RecordBase) CurrentNote() string { return r.Note }

// FollowUpAt returns the scheduled follow-up date, if any
func (r *RecordBase) FollowUpAt() *time.Time { return r.FollowUp }

// SetStatus sets the record's status
func (r *RecordBase) SetStatus(s Status) { r.Status = s }

// AppendHistory prepends a new entry; existing entries keep their position
func (r *RecordBase) AppendHistory(e HistoryEntry) {
	r.Entries = append([]HistoryEntry{e}, r.Entries...)
}

// SetCurrentNote replaces the free-text working note
func (r *RecordBase) SetCurrentNote(n string) { r.Note = n }

// SetFollowUpAt sets or clears the scheduled follow-up date
func (r *RecordBase) SetFollowUpAt(t *time.Time) { r.FollowUp = t }

// Touch updates the modification timestamp
func (r *RecordBase) Touch(now time.Time) { r.UpdatedAt = now }
