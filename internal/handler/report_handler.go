package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporting-life/enrollment-api/pkg/response"
)

type ledgerExporter interface {
	LedgerCSV(ctx context.Context) ([]byte, error)
	LedgerPDF(ctx context.Context) ([]byte, error)
}

// ReportHandler serves admin ledger exports.
type ReportHandler struct {
	service ledgerExporter
}

// NewReportHandler creates a new report handler.
func NewReportHandler(svc ledgerExporter) *ReportHandler {
	return &ReportHandler{service: svc}
}

// LedgerCSV godoc
// @Summary Export ledger as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 403 {object} response.Envelope
// @Router /admin/ledger.csv [get]
func (h *ReportHandler) LedgerCSV(c *gin.Context) {
	data, err := h.service.LedgerCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ledger.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// LedgerPDF godoc
// @Summary Export ledger as PDF
// @Tags Reports
// @Produce application/pdf
// @Success 200 {string} string "PDF content"
// @Failure 403 {object} response.Envelope
// @Router /admin/ledger.pdf [get]
func (h *ReportHandler) LedgerPDF(c *gin.Context) {
	data, err := h.service.LedgerPDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ledger.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
