package model

// DeviceType represents the kind of managed network device
type DeviceType string

const (
	DeviceTypeRouter DeviceType = "router"
	DeviceTypeSwitch DeviceType = "switch"
	DeviceTypeServer DeviceType = "server"
)

// ValidDeviceType reports whether t is one of the known device types
func ValidDeviceType(t string) bool {
	switch DeviceType(t) {
	case DeviceTypeRouter, DeviceTypeSwitch, DeviceTypeServer:
		return true
	}
	return false
}

// DeviceStatus represents device reachability status
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
)

// ValidDeviceStatus reports whether s is one of the known statuses
func ValidDeviceStatus(s string) bool {
	switch DeviceStatus(s) {
	case DeviceStatusOnline, DeviceStatusOffline:
		return true
	}
	return false
}

// Device represents a managed network device record.
// The unique index on IPAddress is the authoritative guard for the
// no-two-devices-share-an-IP invariant; callers must not rely on a
// separate existence check before insert.
type Device struct {
	BaseModel
	Name      string       `gorm:"type:varchar(128);not null" json:"name"`
	IPAddress string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"ip_address"`
	Type      DeviceType   `gorm:"type:varchar(16);index;not null" json:"type"`
	Location  string       `gorm:"type:varchar(128);not null" json:"location"`
	Status    DeviceStatus `gorm:"type:varchar(16);index;not null;default:'offline'" json:"status"`
}

// TableName specifies the table name for Device model
func (Device) TableName() string {
	return "devices"
}
