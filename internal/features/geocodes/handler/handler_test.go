package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/geocodes/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGeocodeService is a mock implementation of ports.GeocodeService
type MockGeocodeService struct {
	mock.Mock
}

func (m *MockGeocodeService) Resolve(ctx context.Context, postalCode string) (*domain.RegionInfo, error) {
	args := m.Called(ctx, postalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegionInfo), args.Error(1)
}

func (m *MockGeocodeService) SweepExpired(ctx context.Context, retention time.Duration, limit int) (int, error) {
	args := m.Called(ctx, retention, limit)
	return args.Int(0), args.Error(1)
}

func setupApp(svc *MockGeocodeService) *fiber.App {
	app := fiber.New()
	handler := NewGeocodeHandler(svc, 7*24*time.Hour, 2000)
	app.Post("/geocodes/sweep", handler.Sweep)
	app.Get("/geocodes/:postalCode", handler.GetGeocode)
	return app
}

func TestGeocodeHandler_Sweep(t *testing.T) {
	t.Run("DefaultLimit", func(t *testing.T) {
		svc := new(MockGeocodeService)
		svc.On("SweepExpired", mock.Anything, 7*24*time.Hour, 2000).Return(42, nil).Once()

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodPost, "/geocodes/sweep", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body SweepResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 42, body.Deleted)
		svc.AssertExpectations(t)
	})

	t.Run("QueryLimit", func(t *testing.T) {
		svc := new(MockGeocodeService)
		svc.On("SweepExpired", mock.Anything, mock.Anything, 10).Return(10, nil).Once()

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodPost, "/geocodes/sweep?limit=10", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		svc := new(MockGeocodeService)

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodPost, "/geocodes/sweep?limit=-1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "SweepExpired", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ServiceError", func(t *testing.T) {
		svc := new(MockGeocodeService)
		svc.On("SweepExpired", mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("redis down")).Once()

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodPost, "/geocodes/sweep", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGeocodeHandler_GetGeocode(t *testing.T) {
	tests := []struct {
		name   string
		info   *domain.RegionInfo
		err    error
		status int
	}{
		{name: "Found", info: &domain.RegionInfo{RegionCode: "SP", Locality: "São Paulo"}, status: http.StatusOK},
		{name: "NotFound", err: fmt.Errorf("lookup: %w", domain.ErrPostalCodeNotFound), status: http.StatusNotFound},
		{name: "Empty", err: service.ErrEmptyPostalCode, status: http.StatusBadRequest},
		{name: "Upstream", err: errors.New("connection refused"), status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockGeocodeService)
			svc.On("Resolve", mock.Anything, "01000000").Return(tt.info, tt.err).Once()

			resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/geocodes/01000000", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.info != nil {
				var got domain.RegionInfo
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				assert.Equal(t, *tt.info, got)
			}
		})
	}
}
