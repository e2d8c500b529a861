// Package lifecycle owns record status transitions and the append-only
// disposition history. Every status change in the system flows through
// Transition; nothing else may touch the history log.
package lifecycle

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
)

// Vocabulary describes one module's status space: which statuses exist,
// which one marks an untouched record, which one schedules a callback,
// and the canned note recorded when a disposition carries no note.
type Vocabulary struct {
	Untouched    shared.Status
	Callback     shared.Status
	Statuses     []shared.Status
	DefaultNotes map[shared.Status]string
}

// Contains reports whether s is a valid status for this module
func (v Vocabulary) Contains(s shared.Status) bool {
	for _, known := range v.Statuses {
		if known == s {
			return true
		}
	}
	return false
}

// Lifecycle applies dispositions to records of one module
type Lifecycle struct {
	vocab Vocabulary
	clock shared.Clock
}

// New creates a Lifecycle for the given vocabulary
func New(vocab Vocabulary, clock shared.Clock) *Lifecycle {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &Lifecycle{vocab: vocab, clock: clock}
}

// Vocabulary returns the module vocabulary this lifecycle enforces
func (l *Lifecycle) Vocabulary() Vocabulary {
	return l.vocab
}

// Transition applies a disposition to rec: it appends exactly one history
// entry (using the module's canned note when note is empty), sets the new
// status, records or clears the follow-up date, and clears the free-text
// working note so it cannot leak into the next interaction.
//
// A transition to the callback status without a follow-up date fails with
// ErrMissingFollowUp and leaves rec unchanged.
func (l *Lifecycle) Transition(rec shared.ManagedRecord, newStatus shared.Status, note string, followUp *time.Time) error {
	if !l.vocab.Contains(newStatus) {
		return shared.NewDomainError(shared.ErrValidation.Code, "Unknown status: "+string(newStatus))
	}
	if newStatus == l.vocab.Callback && followUp == nil {
		return shared.ErrMissingFollowUp
	}

	now := l.clock.Now()
	if note == "" {
		note = l.vocab.DefaultNotes[newStatus]
	}
	rec.AppendHistory(shared.HistoryEntry{
		Timestamp:       now,
		ResultingStatus: newStatus,
		Note:            note,
	})
	rec.SetStatus(newStatus)
	if newStatus == l.vocab.Callback {
		rec.SetFollowUpAt(followUp)
	} else {
		rec.SetFollowUpAt(nil)
	}
	rec.SetCurrentNote("")
	rec.Touch(now)
	return nil
}

// Due reports whether rec has a follow-up that is due: its status is the
// callback status and the scheduled date is today or earlier.
func (l *Lifecycle) Due(rec shared.Record) bool {
	if rec.CurrentStatus() != l.vocab.Callback {
		return false
	}
	at := rec.FollowUpAt()
	if at == nil {
		return false
	}
	return shared.OnOrBeforeDay(*at, l.clock.Now())
}
