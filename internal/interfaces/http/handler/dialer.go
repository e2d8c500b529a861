package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/domain/shared"
)

// DialerHandler handles dialer contact and campaign session endpoints
type DialerHandler struct {
	BaseHandler
	dialer *directory.DialerService
}

// NewDialerHandler creates a new DialerHandler
func NewDialerHandler(dialer *directory.DialerService) *DialerHandler {
	return &DialerHandler{dialer: dialer}
}

// ImportContactsRequest is the request body for a contact list import
type ImportContactsRequest struct {
	Contacts []ContactEntry `json:"contacts" binding:"required,min=1,dive"`
}

// ContactEntry is one contact of an import batch
type ContactEntry struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"required,min=3,max=50"`
	Campaign string `json:"campaign" binding:"max=100"`
	Area     string `json:"area" binding:"max=100"`
}

// SessionResponse reports the campaign cursor state
type SessionResponse struct {
	Active  bool   `json:"active"`
	Current string `json:"current,omitempty"`
}

// List returns the viewer's visible dialer contacts
func (h *DialerHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	records, err := h.dialer.List(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, records)
}

// Import adds a batch of contacts to the viewer's calling list
func (h *DialerHandler) Import(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var req ImportContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	entries := make([]directory.ContactInput, len(req.Contacts))
	for i, e := range req.Contacts {
		entries[i] = directory.ContactInput{
			Name:     e.Name,
			Phone:    e.Phone,
			Campaign: e.Campaign,
			Area:     e.Area,
		}
	}
	count, err := h.dialer.Import(c.Request.Context(), viewer, entries)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusCreated, gin.H{"imported": count})
}

// DueFollowUps returns the contacts whose callback is due today or earlier
func (h *DialerHandler) DueFollowUps(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	due, err := h.dialer.DueFollowUps(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, due)
}

// StartSession begins a campaign session over the current contact list
func (h *DialerHandler) StartSession(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	current, active, err := h.dialer.StartSession(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, sessionResponse(current, active))
}

// Disposition applies an outcome to the contact under the cursor and
// advances the session.
func (h *DialerHandler) Disposition(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var req DispositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	next, active, err := h.dialer.Disposition(c.Request.Context(), viewer,
		shared.Status(req.Status), req.Note, req.FollowUp)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, sessionResponse(next, active))
}

// Jump moves the session cursor to an arbitrary contact
func (h *DialerHandler) Jump(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.dialer.Jump(viewer, id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, sessionResponse(id, true))
}

// EndSession discards the viewer's campaign session
func (h *DialerHandler) EndSession(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	h.dialer.EndSession(viewer)
	c.Status(http.StatusNoContent)
}

func sessionResponse(current uuid.UUID, active bool) SessionResponse {
	resp := SessionResponse{Active: active}
	if active {
		resp.Current = current.String()
	}
	return resp
}
