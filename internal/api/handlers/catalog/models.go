package catalog

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type HallResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MasterResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	HallID   int64  `json:"hallId"`
	IsActive bool   `json:"isActive"`
}

type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	HallID          int64  `json:"hallId"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// RenameHallRequest HTTP request model
type RenameHallRequest struct {
	Name string `json:"name"`
}

// AddMasterRequest HTTP request model
type AddMasterRequest struct {
	Name   string `json:"name"`
	HallID int64  `json:"hallId"`
}

// AddServiceRequest HTTP request model
type AddServiceRequest struct {
	Name            string `json:"name"`
	HallID          int64  `json:"hallId"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// UpdatePriceRequest HTTP request model
type UpdatePriceRequest struct {
	Price *int `json:"price"`
}

func (r *AddServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		HallID:          r.HallID,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}

func FromHalls(halls []*domain.Hall) []HallResponse {
	resp := make([]HallResponse, 0, len(halls))
	for _, h := range halls {
		resp = append(resp, HallResponse{ID: h.ID, Name: h.Name})
	}
	return resp
}

func FromMaster(m *domain.Master) MasterResponse {
	return MasterResponse{ID: m.ID, Name: m.Name, HallID: m.HallID, IsActive: m.IsActive}
}

func FromMasters(masters []*domain.Master) []MasterResponse {
	resp := make([]MasterResponse, 0, len(masters))
	for _, m := range masters {
		resp = append(resp, FromMaster(m))
	}
	return resp
}

func FromService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		HallID:          s.HallID,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

func FromServices(services []*domain.Service) []ServiceResponse {
	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, FromService(s))
	}
	return resp
}
