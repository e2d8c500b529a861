package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/domain/shared"
)

// VendorHandler handles vendor and enquiry endpoints
type VendorHandler struct {
	BaseHandler
	vendors *directory.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendors *directory.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// CreateVendorRequest is the request body for a manual vendor entry
type CreateVendorRequest struct {
	OwnerTenant string  `json:"owner_tenant" binding:"omitempty,uuid"`
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Phone       string  `json:"phone" binding:"required,min=3,max=50"`
	Email       string  `json:"email" binding:"omitempty,email,max=200"`
	City        string  `json:"city" binding:"max=100"`
	Service     string  `json:"service" binding:"max=100"`
	MonthlyFee  float64 `json:"monthly_fee" binding:"omitempty,gte=0"`
}

// CreateEnquiryRequest is the request body for an inbound enquiry
type CreateEnquiryRequest struct {
	OwnerTenant string `json:"owner_tenant" binding:"omitempty,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Message     string `json:"message" binding:"max=2000"`
	Service     string `json:"service" binding:"max=100"`
}

// DispositionRequest is the request body for a status transition
type DispositionRequest struct {
	Status   string     `json:"status" binding:"required,min=1,max=50"`
	Note     string     `json:"note" binding:"max=2000"`
	FollowUp *time.Time `json:"follow_up"`
}

// List returns the viewer's visible vendors with tenant tags
func (h *VendorHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	records, err := h.vendors.List(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, records)
}

// Create adds a new vendor record
func (h *VendorHandler) Create(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	owner := uuid.Nil
	if req.OwnerTenant != "" {
		owner, _ = uuid.Parse(req.OwnerTenant)
	}
	vendor, err := h.vendors.Create(c.Request.Context(), viewer, directory.CreateVendorInput{
		OwnerTenant: owner,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		City:        req.City,
		Service:     req.Service,
		MonthlyFee:  decimal.NewFromFloat(req.MonthlyFee),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusCreated, vendor)
}

// Disposition applies a status transition to a vendor
func (h *VendorHandler) Disposition(c *gin.Context) {
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
	vendor, err := h.vendors.Disposition(c.Request.Context(), viewer, id,
		shared.Status(req.Status), req.Note, req.FollowUp)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, vendor)
}

// Delete permanently removes a vendor record
func (h *VendorHandler) Delete(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.vendors.Delete(c.Request.Context(), viewer, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEnquiries returns the viewer's visible enquiries
func (h *VendorHandler) ListEnquiries(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	records, err := h.vendors.Enquiries().List(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, records)
}

// CreateEnquiry records an inbound enquiry
func (h *VendorHandler) CreateEnquiry(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var req CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	owner := uuid.Nil
	if req.OwnerTenant != "" {
		owner, _ = uuid.Parse(req.OwnerTenant)
	}
	enquiry, err := h.vendors.CreateEnquiry(c.Request.Context(), viewer, directory.CreateEnquiryInput{
		OwnerTenant: owner,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Message:     req.Message,
		Service:     req.Service,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusCreated, enquiry)
}

// PromoteEnquiry converts an enquiry into a vendor record
func (h *VendorHandler) PromoteEnquiry(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	vendor, err := h.vendors.PromoteEnquiry(c.Request.Context(), viewer, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusCreated, vendor)
}
