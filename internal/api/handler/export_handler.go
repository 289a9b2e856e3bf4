package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler spreadsheet downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTravelOrders filtered travel orders as .xlsx
// GET /api/v1/travel-orders/export
func (h *ExportHandler) ExportTravelOrders(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.TravelOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportTravelOrders(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
