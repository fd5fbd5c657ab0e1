package reports

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type LineResponse struct {
	HallID      int64  `json:"hallId"`
	HallName    string `json:"hallName"`
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Count       int    `json:"count"`
	Total       int    `json:"total"`
}

type MonthlyResponse struct {
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	HallID     *int64         `json:"hallId,omitempty"`
	Lines      []LineResponse `json:"lines"`
	TotalCount int            `json:"totalCount"`
	Total      int            `json:"total"`
}

func FromReport(r *domain.MonthlyReport) *MonthlyResponse {
	resp := &MonthlyResponse{
		Year:       r.Year,
		Month:      r.Month,
		HallID:     r.HallID,
		Lines:      make([]LineResponse, 0, len(r.Lines)),
		TotalCount: r.TotalCount,
		Total:      r.Total,
	}
	for _, l := range r.Lines {
		resp.Lines = append(resp.Lines, LineResponse(l))
	}
	return resp
}
