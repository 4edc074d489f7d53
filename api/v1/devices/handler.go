package devices

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"devinv/internal/device"
	"devinv/internal/dto"
	"devinv/internal/httpx"
	"devinv/internal/model"
)

// DeviceRequest represents the create/update device payload
type DeviceRequest struct {
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
	Type      string `json:"type"`
	Location  string `json:"location"`
	Status    string `json:"status"`
}

func (r DeviceRequest) toInput() device.DeviceInput {
	return device.DeviceInput{
		Name:      r.Name,
		IPAddress: r.IPAddress,
		Type:      r.Type,
		Location:  r.Location,
		Status:    r.Status,
	}
}

// Handler handles the devices API
type Handler struct {
	svc *device.Service
}

// NewHandler creates a devices handler
func NewHandler(svc *device.Service) *Handler {
	return &Handler{svc: svc}
}

func toDTO(d *model.Device) dto.DeviceDTO {
	return dto.DeviceDTO{
		ID:        strconv.Itoa(d.ID),
		Name:      d.Name,
		IPAddress: d.IPAddress,
		Type:      string(d.Type),
		Location:  d.Location,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// failDevice maps service errors onto the HTTP error taxonomy
func failDevice(c *gin.Context, err error) {
	var ferr *device.FieldError
	switch {
	case errors.As(err, &ferr):
		httpx.FailErr(c, httpx.ErrValidation(ferr.Message))
	case errors.Is(err, device.ErrNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("device not found"))
	case errors.Is(err, device.ErrDuplicateIP):
		httpx.FailErr(c, httpx.ErrConflict("device with this IP already exists"))
	case errors.Is(err, device.ErrStoreUnavailable):
		httpx.FailErr(c, httpx.ErrUnavailable("database unavailable", err))
	default:
		httpx.FailErr(c, httpx.ErrStorage("storage error", err))
	}
}

// List handles GET /devices
func (h *Handler) List(c *gin.Context) {
	devs, err := h.svc.List(c.Request.Context())
	if err != nil {
		failDevice(c, err)
		return
	}

	items := make([]dto.DeviceDTO, 0, len(devs))
	for i := range devs {
		items = append(items, toDTO(&devs[i]))
	}
	httpx.OK(c, items)
}

// Create handles POST /devices
func (h *Handler) Create(c *gin.Context) {
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrValidation("invalid input").WithDetails(err.Error()))
		return
	}

	d, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		failDevice(c, err)
		return
	}
	httpx.Created(c, toDTO(d))
}

// Get handles GET /devices/:id
func (h *Handler) Get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failDevice(c, err)
		return
	}
	httpx.OK(c, toDTO(d))
}

// Update handles PUT /devices/:id
func (h *Handler) Update(c *gin.Context) {
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrValidation("invalid input").WithDetails(err.Error()))
		return
	}

	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		failDevice(c, err)
		return
	}
	httpx.OK(c, toDTO(d))
}

// Delete handles DELETE /devices/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failDevice(c, err)
		return
	}
	httpx.NoContent(c)
}

// Status handles GET /devices/:id/status.
// It answers in degraded mode too: the store being down never yields a 503
// here, only a best-effort verdict.
func (h *Handler) Status(c *gin.Context) {
	res, err := h.svc.CheckStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		failDevice(c, err)
		return
	}

	httpx.OK(c, dto.StatusDTO{
		Status:      string(res.Status),
		LastChecked: res.LastChecked,
	})
}
