package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"devinv/internal/db"
	"devinv/internal/model"
)

// Sentinel errors surfaced by the repository
var (
	ErrNotFound         = errors.New("device not found")
	ErrDuplicateIP      = errors.New("device with this IP already exists")
	ErrStoreUnavailable = errors.New("database unavailable")
)

// Repository provides device persistence on top of gorm.
// The unique index on ip_address enforces the IP uniqueness invariant
// atomically at the store; duplicate-key failures are translated to
// ErrDuplicateIP for both create and update.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a device repository
func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// Ping checks store availability with a bounded timeout
func (r *Repository) Ping(ctx context.Context, timeout time.Duration) error {
	if err := db.Ping(ctx, r.db, timeout); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// List returns all devices ordered by name ascending
func (r *Repository) List(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	if err := r.db.WithContext(ctx).Order("name asc").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

// Create inserts a new device. A duplicate IP address fails with
// ErrDuplicateIP via the store's unique index.
func (r *Repository) Create(ctx context.Context, d *model.Device) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIP
		}
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

// FindByIdentifier resolves a raw identifier and loads the device.
// An unresolvable identifier is reported as ErrNotFound.
func (r *Repository) FindByIdentifier(ctx context.Context, raw string) (*model.Device, error) {
	id, ok := ResolveID(raw)
	if !ok {
		return nil, ErrNotFound
	}

	var d model.Device
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find device %d: %w", id, err)
	}
	return &d, nil
}

// Update replaces all mutable fields of a device. Moving to an IP held by
// another device fails with ErrDuplicateIP; keeping the current IP succeeds
// since the row's own index entry is untouched.
func (r *Repository) Update(ctx context.Context, raw string, in DeviceInput) (*model.Device, error) {
	d, err := r.FindByIdentifier(ctx, raw)
	if err != nil {
		return nil, err
	}

	d.Name = in.Name
	d.IPAddress = in.IPAddress
	d.Type = model.DeviceType(in.Type)
	d.Location = in.Location
	d.Status = model.DeviceStatus(in.Status)

	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIP
		}
		return nil, fmt.Errorf("failed to update device %d: %w", d.ID, err)
	}
	return d, nil
}

// UpdateStatus persists a newly measured status, refreshing updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id int, status model.DeviceStatus) error {
	if err := r.db.WithContext(ctx).Model(&model.Device{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update status of device %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a device and returns its resolved id
func (r *Repository) Delete(ctx context.Context, raw string) (int, error) {
	id, ok := ResolveID(raw)
	if !ok {
		return 0, ErrNotFound
	}

	tx := r.db.WithContext(ctx).Delete(&model.Device{}, id)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to delete device %d: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return id, nil
}
