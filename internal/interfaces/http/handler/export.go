package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crm/backend/internal/application/directory"
)

// ExportHandler hands record snapshots to external export collaborators
type ExportHandler struct {
	BaseHandler
	exports *directory.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exports *directory.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ExportResponse carries a flattened snapshot
type ExportResponse struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Vendors returns the viewer's vendor snapshot as flat rows
func (h *ExportHandler) Vendors(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	header, rows, err := h.exports.VendorRows(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, ExportResponse{Header: header, Rows: rows})
}

// Leads returns the viewer's lead snapshot as flat rows
func (h *ExportHandler) Leads(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	header, rows, err := h.exports.LeadRows(c.Request.Context(), viewer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSuccess(c, http.StatusOK, ExportResponse{Header: header, Rows: rows})
}
