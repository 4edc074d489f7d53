package device

import (
	"strconv"
	"strings"

	"devinv/internal/model"
)

// DeviceInput is the typed payload for create and update operations
type DeviceInput struct {
	Name      string
	IPAddress string
	Type      string
	Location  string
	Status    string
}

// FieldError names the first field that failed validation
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return e.Message
}

func fieldRequired(field string) *FieldError {
	return &FieldError{Field: field, Message: field + " is required"}
}

// ValidateInput checks a device payload. Rules apply in fixed order and the
// first failure wins: required fields, IPv4 syntax, type enum, status enum.
// Status is only required (and only checked) when requireStatus is set,
// except that a supplied status is always checked against the enum.
func ValidateInput(in DeviceInput, requireStatus bool) *FieldError {
	if strings.TrimSpace(in.Name) == "" {
		return fieldRequired("name")
	}
	if strings.TrimSpace(in.IPAddress) == "" {
		return fieldRequired("ip_address")
	}
	if strings.TrimSpace(in.Type) == "" {
		return fieldRequired("type")
	}
	if strings.TrimSpace(in.Location) == "" {
		return fieldRequired("location")
	}
	if requireStatus && strings.TrimSpace(in.Status) == "" {
		return fieldRequired("status")
	}

	if !isIPv4(in.IPAddress) {
		return &FieldError{Field: "ip_address", Message: "ip_address must be a valid IPv4 address"}
	}

	if !model.ValidDeviceType(in.Type) {
		return &FieldError{Field: "type", Message: "type must be one of router, switch, server"}
	}

	if in.Status != "" && !model.ValidDeviceStatus(in.Status) {
		return &FieldError{Field: "status", Message: "status must be one of online, offline"}
	}

	return nil
}

// isIPv4 reports whether s is four dot-separated decimal octets, each 0-255
func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}
