package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/repository"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

var ErrExportGenerateFail = errors.New("failed to generate spreadsheet")

const exportSheetName = "Travel orders"

// ExportService spreadsheet export of travel orders
//
// The export takes the same filters as the list endpoint, ignores paging and
// is capped at travel.export_max_rows. The workbook is returned as a buffer;
// the handler sets the download headers.
type ExportService interface {
	ExportTravelOrders(ctx context.Context, p model.Principal, req *dto.TravelOrderListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.TravelConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(cfg *config.TravelConfig, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

func (s *exportService) ExportTravelOrders(ctx context.Context, p model.Principal, req *dto.TravelOrderListRequest) (*bytes.Buffer, string, error) {
	if !p.IsAdmin {
		return nil, "", pkgerrors.ErrForbidden
	}

	filters, err := BuildTravelOrderFilters(p, req)
	if err != nil {
		return nil, "", err
	}

	maxRows := s.cfg.ExportMaxRows
	if maxRows <= 0 {
		maxRows = 10000
	}

	orders, total, err := s.repo.TravelOrder.List(ctx, filters, 0, maxRows)
	if err != nil {
		s.logger.Error("failed to list travel orders for export", zap.Error(err))
		return nil, "", pkgerrors.Storage("list travel orders", err)
	}
	if total > int64(len(orders)) {
		s.logger.Warn("travel order export truncated",
			zap.Int64("total", total),
			zap.Int("exported", len(orders)),
		)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Requester", "Email", "Destination", "Departure date", "Return date", "Status", "Created at"}
	widths := []float64{8, 24, 30, 32, 16, 16, 12, 22}
	for i, h := range headers {
		col := colName(i)
		f.SetCellValue(exportSheetName, cell(col, 1), h)
		f.SetColWidth(exportSheetName, col, col, widths[i])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	f.SetCellStyle(exportSheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	f.SetPanes(exportSheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i := range orders {
		o := &orders[i]
		row := i + 2

		requester, email := "", ""
		if o.User != nil {
			requester, email = o.User.Name, o.User.Email
		}

		values := []interface{}{
			o.ID,
			requester,
			email,
			o.Destination,
			o.DepartureDate.String(),
			o.ReturnDate.String(),
			string(o.Status),
			o.CreatedAt.UTC().Format(RequestedAtLayout),
		}
		for c, v := range values {
			f.SetCellValue(exportSheetName, cell(colName(c), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write spreadsheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("travel_orders_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// colName zero-based column index to its letter
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
