// Package campaign implements the sequential outreach session: an ordered,
// cursor-driven traversal of one filtered record list.
package campaign

import (
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
)

// State is the session state machine: Idle -> Active -> Idle
type State int

const (
	Idle State = iota
	Active
)

// Session walks a filtered record list in display order. It is volatile:
// it lives in memory only and is rebuilt from the current list on each
// activation, with no resumption guarantee.
//
// Candidate policy: Start admits records that are untouched or have a due
// callback; Advance scans forward for untouched records only. A due
// callback therefore re-enters outreach on the next fresh Start, it is
// never spliced into an in-progress scan.
type Session struct {
	life   *lifecycle.Lifecycle
	ids    []uuid.UUID
	cursor int
	state  State
}

// NewSession creates an idle session using the module lifecycle's
// vocabulary and clock for candidate checks.
func NewSession(life *lifecycle.Lifecycle) *Session {
	return &Session{life: life, state: Idle}
}

// State returns the current session state
func (s *Session) State() State {
	return s.state
}

// Current returns the record id under the cursor while the session is active
func (s *Session) Current() (uuid.UUID, bool) {
	if s.state != Active {
		return uuid.Nil, false
	}
	return s.ids[s.cursor], true
}

// Start captures the list's current display order and positions the cursor
// on the first actionable record. With no actionable record the session
// stays Idle and reports false.
func (s *Session) Start(records []shared.Record) bool {
	s.ids = make([]uuid.UUID, len(records))
	for i, r := range records {
		s.ids[i] = r.RecordID()
	}
	for i, r := range records {
		if s.actionable(r) {
			s.cursor = i
			s.state = Active
			return true
		}
	}
	s.ids = nil
	s.state = Idle
	return false
}

// Advance moves the cursor to the next untouched record after the current
// position, using the caller's freshly re-read list for statuses. When no
// untouched record remains ahead, the session returns to Idle and reports
// false. Each call either strictly advances the cursor or ends the
// session, so a session over n records terminates in at most n calls.
func (s *Session) Advance(records []shared.Record) bool {
	if s.state != Active {
		return false
	}
	statuses := make(map[uuid.UUID]shared.Status, len(records))
	for _, r := range records {
		statuses[r.RecordID()] = r.CurrentStatus()
	}
	untouched := s.life.Vocabulary().Untouched
	for i := s.cursor + 1; i < len(s.ids); i++ {
		if st, ok := statuses[s.ids[i]]; ok && st == untouched {
			s.cursor = i
			return true
		}
	}
	s.state = Idle
	s.ids = nil
	return false
}

// Jump moves the cursor to an arbitrary record in the session's list.
// The next Advance continues scanning forward from the new position.
func (s *Session) Jump(id uuid.UUID) bool {
	if s.state != Active {
		return false
	}
	for i, known := range s.ids {
		if known == id {
			s.cursor = i
			return true
		}
	}
	return false
}

// End discards the session state
func (s *Session) End() {
	s.state = Idle
	s.ids = nil
	s.cursor = 0
}

func (s *Session) actionable(r shared.Record) bool {
	if r.CurrentStatus() == s.life.Vocabulary().Untouched {
		return true
	}
	return s.life.Due(r)
}

// DuePool filters the records whose follow-up is due under the lifecycle's
// clock, preserving the list's order.
func DuePool(records []shared.Record, life *lifecycle.Lifecycle) []shared.Record {
	var due []shared.Record
	for _, r := range records {
		if life.Due(r) {
			due = append(due, r)
		}
	}
	return due
}
