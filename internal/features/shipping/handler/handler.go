package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/features/shipping/domain"
	"shipping-calculator/internal/features/shipping/ports"
	"shipping-calculator/internal/features/shipping/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StoreIDHeader carries the merchant store id.
const StoreIDHeader = "X-Store-ID"

// Error codes returned in ErrorResponse.Error.
const (
	CodeAuthError     = "CALCULATE_AUTH_ERR"
	CodeConfigError   = "CALCULATE_ERR"
	CodeEmptyCart     = "CALCULATE_EMPTY_CART"
	CodeInvalidParams = "CALCULATE_INVALID_PARAMS"
)

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Error is a stable error code.
	Error string `json:"error"`
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Application holds the merchant configuration sent with each call.
type Application struct {
	Data       json.RawMessage `json:"data,omitempty" swaggertype:"object"`
	HiddenData json.RawMessage `json:"hidden_data,omitempty" swaggertype:"object"`
}

// CalculateShippingRequest is the calculate shipping module body.
type CalculateShippingRequest struct {
	Params      domain.CalculateParams `json:"params"`
	Application Application            `json:"application"`
}

// ShippingHandler handles HTTP requests for shipping quotes.
type ShippingHandler struct {
	service  ports.QuoteService
	validate *validator.Validate
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(service ports.QuoteService) *ShippingHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	return &ShippingHandler{
		service:  service,
		validate: validate,
	}
}

// CalculateShipping godoc
// @Summary Calculate shipping
// @Description Quotes Envia.com carriers for a cart and applies the merchant shipping rules.
// @Description Without params.to only the free shipping preview is returned.
// @Tags shipping
// @Accept json
// @Produce json
// @Param X-Store-ID header string false "Merchant store id"
// @Param body body CalculateShippingRequest true "Calculate shipping module body"
// @Success 200 {object} domain.CalculateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ecom/modules/calculate-shipping [post]
func (h *ShippingHandler) CalculateShipping(c *fiber.Ctx) error {
	var body CalculateShippingRequest
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, http.StatusBadRequest, CodeInvalidParams, "invalid request body")
	}
	if err := h.validate.Struct(body); err != nil {
		return respondError(c, http.StatusBadRequest, CodeInvalidParams, validationMessage(err))
	}
	if body.Params.To != nil && body.Params.DestinationZip() == "" {
		return respondError(c, http.StatusBadRequest, CodeInvalidParams, "params.to.zip is required")
	}

	app, err := domain.MergeAppData(body.Application.Data, body.Application.HiddenData)
	if err != nil {
		return respondError(c, http.StatusBadRequest, CodeInvalidParams, err.Error())
	}

	storeID := c.Get(StoreIDHeader)
	resp, err := h.service.Calculate(c.UserContext(), storeID, domain.CalculateRequest{
		Params: body.Params,
		App:    app,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingAPIKey):
			return respondError(c, http.StatusConflict, CodeAuthError,
				"Key app hidden data (merchant must configure the app)")
		case errors.Is(err, service.ErrMissingOriginZip):
			return respondError(c, http.StatusConflict, CodeConfigError,
				"Zip code is unset on app hidden data (merchant must configure the app)")
		case errors.Is(err, service.ErrEmptyCart):
			return respondError(c, http.StatusBadRequest, CodeEmptyCart,
				"Cannot calculate shipping without cart items")
		}

		logger.ForStore(storeID).Error("Failed to calculate shipping", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, CodeConfigError, "Internal server error")
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: message,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()+" failed on "+fe.Tag())
	}
	return "invalid params: " + strings.Join(fields, "; ")
}
