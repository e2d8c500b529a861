package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/domain/shared"
)

// StaffHandler handles staff endpoints
type StaffHandler struct {
	BaseHandler
	staff *directory.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staff *directory.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// CreateStaffRequest is the request body for a new staff record
type CreateStaffRequest struct {
	OwnerTenant string `json:"owner_tenant" binding:"omitempty,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"required,min=3,max=50"`
	RoleTitle   string `json:"role_title" binding:"max=100"`
	Branch      string `json:"branch" binding:"max=100"`
}

// List returns the viewer's visible staff with tenant tags
func (h *StaffHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	records, err := h.staff.List(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, records)
}

// Create adds a new staff record
func (h *StaffHandler) Create(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	owner := uuid.Nil
	if req.OwnerTenant != "" {
		owner, _ = uuid.Parse(req.OwnerTenant)
	}
	member, err := h.staff.Create(c.Request.Context(), viewer, directory.CreateStaffInput{
		OwnerTenant: owner,
		Name:        req.Name,
		Phone:       req.Phone,
		RoleTitle:   req.RoleTitle,
		Branch:      req.Branch,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusCreated, member)
}

// Disposition applies a status transition to a staff record
func (h *StaffHandler) Disposition(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req DispositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	member, err := h.staff.Disposition(c.Request.Context(), viewer, id,
		shared.Status(req.Status), req.Note, req.FollowUp)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, member)
}

// Delete permanently removes a staff record
func (h *StaffHandler) Delete(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.staff.Delete(c.Request.Context(), viewer, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
