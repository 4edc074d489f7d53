package dto

import "time"

// DeviceDTO represents a device in API responses
type DeviceDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IPAddress string    `json:"ip_address"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusDTO represents a live status-check result in API responses
type StatusDTO struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
}

// HealthDTO represents the health endpoint payload
type HealthDTO struct {
	Service     string `json:"service"`
	DBAvailable bool   `json:"db_available"`
	Error       string `json:"error,omitempty"`
}
