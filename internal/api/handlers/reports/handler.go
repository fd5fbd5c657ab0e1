package reports

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	reportsService "github.com/m04kA/SMC-SalonBooking/internal/service/reports"
)

const (
	msgInvalidParams = "некорректные параметры: нужны year, month (1-12), необязательные hallId и format=xlsx"

	formatXLSX      = "xlsx"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports/monthly
// Query params: year, month (required), hallId, format=xlsx (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, errYear := strconv.Atoi(query.Get("year"))
	month, errMonth := strconv.Atoi(query.Get("month"))
	hallID, errHall := handlers.QueryInt64Ptr(r, "hallId")
	format := query.Get("format")
	if errYear != nil || errMonth != nil || errHall != nil || (format != "" && format != formatXLSX) {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	report, err := h.service.Monthly(r.Context(), year, month, hallID)
	if err != nil {
		if errors.Is(err, reportsService.ErrInvalidPeriod) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /admin/reports/monthly - Failed to build report: year=%d, month=%d, error=%v", year, month, err)
		handlers.RespondInternalError(w)
		return
	}

	if format != formatXLSX {
		handlers.RespondJSON(w, http.StatusOK, FromReport(report))
		return
	}

	// Файл собирается в буфер, чтобы ошибка экспорта не оборвала уже начатый ответ
	var buf bytes.Buffer
	if err := reportsService.ExportXLSX(report, &buf); err != nil {
		h.logger.Error("GET /admin/reports/monthly - Failed to export xlsx: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportsService.FileName(report)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)

	h.logger.Info("GET /admin/reports/monthly - XLSX exported: year=%d, month=%d, lines=%d", year, month, len(report.Lines))
}
