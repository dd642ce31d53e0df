package models

import (
	"time"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги.
// Ключи DurationsPrices - длительности в минутах, значения - цены в евро.
type CreateServiceRequest struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DurationsPrices map[string]float64 `json:"durationsPrices"`
	IsActive        *bool              `json:"isActive,omitempty"` // nil = true
}

// UpdateServiceRequest запрос на обновление услуги целиком
type UpdateServiceRequest struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DurationsPrices map[string]float64 `json:"durationsPrices"`
	IsActive        bool               `json:"isActive"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DurationsPrices map[string]float64 `json:"durationsPrices"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// FromDomainService конвертирует domain.Service в ServiceResponse
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		DurationsPrices: s.DurationsPrices,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain.Service в ServiceListResponse
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]*ServiceResponse, 0, len(services)),
		Total:    len(services),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, FromDomainService(s))
	}
	return resp
}
