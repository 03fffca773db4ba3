package handler

import (
	"errors"
	"net/http"
	"time"

	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/geocodes/ports"
	"shipping-calculator/internal/features/geocodes/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GeocodeHandler handles HTTP requests for the geocode cache.
type GeocodeHandler struct {
	service   ports.GeocodeService
	retention time.Duration
	limit     int
}

// NewGeocodeHandler creates a new GeocodeHandler. Zero values fall back to the service defaults.
func NewGeocodeHandler(service ports.GeocodeService, retention time.Duration, limit int) *GeocodeHandler {
	return &GeocodeHandler{
		service:   service,
		retention: retention,
		limit:     limit,
	}
}

// SweepResponse reports how many cache entries a sweep removed.
type SweepResponse struct {
	Deleted int `json:"deleted"`
}

// Sweep handles POST /geocodes/sweep.
// @Summary Sweep expired geocodes
// @Description Deletes cached postal code lookups older than the retention window, bounded per call.
// @Tags Geocodes
// @Produce json
// @Param limit query int false "Maximum deletions for this call"
// @Success 200 {object} SweepResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /geocodes/sweep [post]
func (h *GeocodeHandler) Sweep(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.limit)
	if limit < 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must not be negative",
		})
	}

	deleted, err := h.service.SweepExpired(c.UserContext(), h.retention, limit)
	if err != nil {
		logger.Get().Error("Failed to sweep geocodes", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(SweepResponse{Deleted: deleted})
}

// GetGeocode handles GET /geocodes/:postalCode.
// @Summary Resolve a postal code
// @Description Returns the cached region for a postal code, looking it up on a miss.
// @Tags Geocodes
// @Produce json
// @Param postalCode path string true "Postal code (digits only)"
// @Success 200 {object} domain.RegionInfo
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /geocodes/{postalCode} [get]
func (h *GeocodeHandler) GetGeocode(c *fiber.Ctx) error {
	postalCode := c.Params("postalCode")
	info, err := h.service.Resolve(c.UserContext(), postalCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPostalCode):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, domain.ErrPostalCodeNotFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Postal code not found",
			})
		}
		logger.Get().Warn("Failed to resolve geocode", zap.String("postal_code", postalCode), zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Geocode lookup failed",
		})
	}

	return c.Status(http.StatusOK).JSON(info)
}
