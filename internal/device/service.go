package device

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"devinv/internal/cache"
	"devinv/internal/model"
	"devinv/internal/probe"
)

// StatusResult is the outcome of a live reachability check
type StatusResult struct {
	Status      model.DeviceStatus
	LastChecked time.Time
}

// Service orchestrates validation, persistence and the reachability probe
// for the device lifecycle operations
type Service struct {
	repo         *Repository
	pinger       probe.Pinger
	cache        *cache.StatusCache // optional, nil disables caching
	logger       *logrus.Entry
	probeTimeout time.Duration
	pingTimeout  time.Duration
}

// ServiceConfig holds the dependencies of the device service
type ServiceConfig struct {
	Repo         *Repository
	Pinger       probe.Pinger
	Cache        *cache.StatusCache
	Logger       *logrus.Entry
	ProbeTimeout time.Duration
	PingTimeout  time.Duration
}

// NewService creates a device service
func NewService(cfg *ServiceConfig) *Service {
	return &Service{
		repo:         cfg.Repo,
		pinger:       cfg.Pinger,
		cache:        cfg.Cache,
		logger:       cfg.Logger.WithField("component", "device-service"),
		probeTimeout: cfg.ProbeTimeout,
		pingTimeout:  cfg.PingTimeout,
	}
}

// requireStore fails fast when the backing store is unreachable
func (s *Service) requireStore(ctx context.Context) error {
	return s.repo.Ping(ctx, s.pingTimeout)
}

// List returns all devices sorted by name
func (s *Service) List(ctx context.Context) ([]model.Device, error) {
	if err := s.requireStore(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Create validates the payload and inserts a new device.
// Status defaults to offline when omitted.
func (s *Service) Create(ctx context.Context, in DeviceInput) (*model.Device, error) {
	if ferr := ValidateInput(in, false); ferr != nil {
		return nil, ferr
	}
	if err := s.requireStore(ctx); err != nil {
		return nil, err
	}

	status := model.DeviceStatus(in.Status)
	if status == "" {
		status = model.DeviceStatusOffline
	}

	d := &model.Device{
		Name:      in.Name,
		IPAddress: in.IPAddress,
		Type:      model.DeviceType(in.Type),
		Location:  in.Location,
		Status:    status,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get loads a single device by identifier
func (s *Service) Get(ctx context.Context, raw string) (*model.Device, error) {
	if err := s.requireStore(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindByIdentifier(ctx, raw)
}

// Update validates the full payload and replaces all mutable fields
func (s *Service) Update(ctx context.Context, raw string, in DeviceInput) (*model.Device, error) {
	if ferr := ValidateInput(in, true); ferr != nil {
		return nil, ferr
	}
	if err := s.requireStore(ctx); err != nil {
		return nil, err
	}

	d, err := s.repo.Update(ctx, raw, in)
	if err != nil {
		return nil, err
	}

	// Caller-supplied status supersedes the last measured one
	if s.cache != nil {
		s.cache.Invalidate(ctx, d.ID)
	}
	return d, nil
}

// Delete hard-deletes a device
func (s *Service) Delete(ctx context.Context, raw string) error {
	if err := s.requireStore(ctx); err != nil {
		return err
	}

	id, err := s.repo.Delete(ctx, raw)
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

// CheckStatus re-measures a device's reachability and returns the result.
// With the store up, the identifier selects the device record and the new
// status is persisted best-effort. With the store down a raw IPv4 literal
// is probed directly, so status checks keep answering in degraded mode.
func (s *Service) CheckStatus(ctx context.Context, raw string) (*StatusResult, error) {
	storeUp := s.repo.Ping(ctx, s.pingTimeout) == nil

	var dev *model.Device
	var addr string

	if storeUp {
		d, err := s.repo.FindByIdentifier(ctx, raw)
		switch {
		case err == nil:
			dev = d
			addr = d.IPAddress
		case errors.Is(err, ErrNotFound):
			return nil, err
		default:
			// Store went away between ping and lookup; degrade
			s.logger.Warnf("Store lookup failed during status check, degrading: %v", err)
			storeUp = false
		}
	}

	if !storeUp && isIPv4(raw) {
		addr = raw
	}

	if addr == "" {
		// Unknown address: fall back to the last measured status if one
		// is cached, otherwise report offline without probing
		if s.cache != nil {
			if id, ok := ResolveID(raw); ok {
				if st, ok := s.cache.GetStatus(ctx, id); ok {
					return &StatusResult{Status: st, LastChecked: time.Now().UTC()}, nil
				}
			}
		}
		return &StatusResult{Status: model.DeviceStatusOffline, LastChecked: time.Now().UTC()}, nil
	}

	status := model.DeviceStatusOffline
	if s.pinger.Probe(ctx, addr, s.probeTimeout) {
		status = model.DeviceStatusOnline
	}

	if dev != nil {
		// Best-effort persistence: a write failure must not fail the
		// status check, the measured value is still returned
		if err := s.repo.UpdateStatus(ctx, dev.ID, status); err != nil {
			s.logger.Warnf("Failed to persist measured status for device %d: %v", dev.ID, err)
		}
		if s.cache != nil {
			s.cache.SetStatus(ctx, dev.ID, status)
		}
	}

	return &StatusResult{Status: status, LastChecked: time.Now().UTC()}, nil
}
