package services

import (
	"context"

	"github.com/123NE456/kb-booking-app/internal/database"
)

// HealthResult reports service liveness
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthService implements the health check
type HealthService struct {
	serviceName string
}

// NewHealthService creates a new health service
func NewHealthService(serviceName string) *HealthService {
	return &HealthService{serviceName: serviceName}
}

// Check reports healthy when the database answers a ping
func (s *HealthService) Check(ctx context.Context) (*HealthResult, error) {
	status := "healthy"
	if err := database.HealthCheck(); err != nil {
		status = "degraded"
	}
	return &HealthResult{
		Status:  status,
		Service: s.serviceName,
	}, nil
}
