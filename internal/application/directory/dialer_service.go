package directory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/application/campaign"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

// DialerService manages outreach contact lists and runs campaign sessions
// over them. Sessions live in memory only, one per viewer tenant; a
// process restart or module switch discards them.
type DialerService struct {
	*ModuleService[*crm.DialerContact]
	clock shared.Clock

	mu       sync.Mutex
	sessions map[uuid.UUID]*campaign.Session
}

// NewDialerService creates the dialer service
func NewDialerService(contacts *persistence.PartitionStore[*crm.DialerContact], registry tenant.Registry, clock shared.Clock, logger *zap.Logger) *DialerService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &DialerService{
		ModuleService: NewModuleService(contacts, registry, lifecycle.New(crm.DialerVocabulary(), clock), logger),
		clock:         clock,
		sessions:      make(map[uuid.UUID]*campaign.Session),
	}
}

// ContactInput is one entry of a contact list import
type ContactInput struct {
	Name     string
	Phone    string
	Campaign string
	Area     string
}

// Import adds a batch of contacts to the viewer's own partition. The whole
// batch is validated before anything is written; one bad entry blocks the
// import.
func (s *DialerService) Import(ctx context.Context, viewer tenant.Viewer, entries []ContactInput) (int, error) {
	owner, err := resolveOwner(s.registry, viewer, uuid.Nil)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	batch := make([]*crm.DialerContact, 0, len(entries))
	for _, in := range entries {
		c, err := crm.NewDialerContact(owner, in.Name, in.Phone, now)
		if err != nil {
			return 0, err
		}
		c.Campaign = in.Campaign
		c.Area = in.Area
		batch = append(batch, c)
	}

	existing, err := s.store.Load(ctx, owner)
	if err != nil {
		return 0, err
	}
	if err := s.store.Save(ctx, owner, append(existing, batch...)); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// StartSession builds a fresh session from the viewer's current contact
// list and returns the first record under the cursor. With no actionable
// contact the session stays idle.
func (s *DialerService) StartSession(ctx context.Context, viewer tenant.Viewer) (uuid.UUID, bool, error) {
	records, err := s.liveRecords(ctx, viewer)
	if err != nil {
		return uuid.Nil, false, err
	}
	session := campaign.NewSession(s.life)
	if !session.Start(records) {
		return uuid.Nil, false, nil
	}
	s.mu.Lock()
	s.sessions[viewer.TenantID] = session
	s.mu.Unlock()
	current, _ := session.Current()
	return current, true, nil
}

// Current returns the record under the session cursor, if a session is active
func (s *DialerService) Current(viewer tenant.Viewer) (uuid.UUID, bool) {
	session := s.session(viewer)
	if session == nil {
		return uuid.Nil, false
	}
	return session.Current()
}

// Disposition applies an outcome to the contact under the cursor, persists
// it, and advances the cursor to the next untouched contact. It returns
// the next record id and whether the session is still active.
func (s *DialerService) Disposition(ctx context.Context, viewer tenant.Viewer, newStatus shared.Status, note string, followUp *time.Time) (uuid.UUID, bool, error) {
	session := s.session(viewer)
	if session == nil {
		return uuid.Nil, false, shared.NewDomainError("NO_SESSION", "No active campaign session")
	}
	current, ok := session.Current()
	if !ok {
		return uuid.Nil, false, shared.NewDomainError("NO_SESSION", "No active campaign session")
	}

	if _, err := s.ModuleService.Disposition(ctx, viewer, current, newStatus, note, followUp); err != nil {
		return uuid.Nil, false, err
	}

	// Re-read before advancing so the scan sees the write, including any
	// made concurrently from another view.
	records, err := s.liveRecords(ctx, viewer)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !session.Advance(records) {
		s.dropSession(viewer)
		return uuid.Nil, false, nil
	}
	next, _ := session.Current()
	return next, true, nil
}

// Jump moves the active session's cursor to an arbitrary contact. Without
// an active session it fails the same way a cursor disposition would; an
// id outside the session's list is a not-found.
func (s *DialerService) Jump(viewer tenant.Viewer, id uuid.UUID) error {
	session := s.session(viewer)
	if session == nil {
		return shared.NewDomainError("NO_SESSION", "No active campaign session")
	}
	if !session.Jump(id) {
		return shared.ErrNotFound
	}
	return nil
}

// EndSession discards the viewer's session, if any
func (s *DialerService) EndSession(viewer tenant.Viewer) {
	s.dropSession(viewer)
}

// DueFollowUps returns the viewer's contacts whose callback is due
func (s *DialerService) DueFollowUps(ctx context.Context, viewer tenant.Viewer) ([]shared.Record, error) {
	records, err := s.liveRecords(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return campaign.DuePool(records, s.life), nil
}

func (s *DialerService) liveRecords(ctx context.Context, viewer tenant.Viewer) ([]shared.Record, error) {
	tagged, err := s.List(ctx, viewer)
	if err != nil {
		return nil, err
	}
	records := make([]shared.Record, len(tagged))
	for i, a := range tagged {
		records[i] = a.Record
	}
	return records, nil
}

func (s *DialerService) session(viewer tenant.Viewer) *campaign.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[viewer.TenantID]
}

func (s *DialerService) dropSession(viewer tenant.Viewer) {
	s.mu.Lock()
	delete(s.sessions, viewer.TenantID)
	s.mu.Unlock()
}
