package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/domain/shared"
)

// LeadHandler handles lead endpoints
type LeadHandler struct {
	BaseHandler
	leads *directory.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leads *directory.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// CreateLeadRequest is the request body for a new lead
type CreateLeadRequest struct {
	OwnerTenant    string  `json:"owner_tenant" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"required,min=1,max=200"`
	Phone          string  `json:"phone" binding:"required,min=3,max=50"`
	Email          string  `json:"email" binding:"omitempty,email,max=200"`
	Source         string  `json:"source" binding:"max=100"`
	Requirement    string  `json:"requirement" binding:"max=2000"`
	EstimatedValue float64 `json:"estimated_value" binding:"omitempty,gte=0"`
}

// List returns the viewer's visible leads with tenant tags
func (h *LeadHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	records, err := h.leads.List(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, records)
}

// Create adds a new lead record
func (h *LeadHandler) Create(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	owner := uuid.Nil
	if req.OwnerTenant != "" {
		owner, _ = uuid.Parse(req.OwnerTenant)
	}
	lead, err := h.leads.Create(c.Request.Context(), viewer, directory.CreateLeadInput{
		OwnerTenant:    owner,
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Source:         req.Source,
		Requirement:    req.Requirement,
		EstimatedValue: decimal.NewFromFloat(req.EstimatedValue),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusCreated, lead)
}

// Disposition applies a status transition to a lead
func (h *LeadHandler) Disposition(c *gin.Context) {
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
	lead, err := h.leads.Disposition(c.Request.Context(), viewer, id,
		shared.Status(req.Status), req.Note, req.FollowUp)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, lead)
}

// Delete permanently removes a lead record
func (h *LeadHandler) Delete(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.leads.Delete(c.Request.Context(), viewer, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
