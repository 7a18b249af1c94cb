package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sitterhub/infras/otel/mocks"
	"sitterhub/internal/domains/booking/model"
	"sitterhub/internal/domains/booking/model/dto"
	serviceMocks "sitterhub/internal/domains/booking/service/mocks"
	"sitterhub/internal/handlers/booking"
	"sitterhub/internal/pricing"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
)

const createBody = `{
	"customer": {"name": "Dana", "email": "dana@example.com"},
	"pet": {"name": "Biscuit", "breed": "Beagle", "age": 4},
	"booking": {"start_date": "2024-06-01", "end_date": "2024-06-08", "county": "Kent"},
	"selected_sitter_ids": ["st-1", "st-2"],
	"selected_addon_ids": ["walk"]
}`

func newRouter(t *testing.T) (*serviceMocks.MockBooking, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockBooking(ctrl)

	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func as(req *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(req.Context(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return req.WithContext(ctx)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data  T      `json:"data"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}

func TestCreateBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error) {
			assert.Equal(t, []string{"st-1", "st-2"}, req.SelectedSitterIDs)
			assert.Equal(t, "Kent", req.Booking.County)

			return dto.CreateBookingResponse{ID: "bk-1", Status: model.StatusPending}, nil
		})

	rec := serve(router, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(createBody)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	res := decode[dto.CreateBookingResponse](t, rec)
	assert.Equal(t, "bk-1", res.ID)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestCreateBooking_InvalidBody(t *testing.T) {
	_, router := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"customer":`},
		{name: "unknown field", body: strings.Replace(createBody, `"selected_addon_ids"`, `"total_cost": 1, "selected_addon_ids"`, 1)},
		{name: "no sitters", body: strings.Replace(createBody, `["st-1", "st-2"]`, `[]`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAcceptBooking(t *testing.T) {
	svc, router := newRouter(t)

	cost := dto.CostResponse{
		BookingID: "bk-1",
		SitterID:  "st-1",
		Nights:    7,
		Frozen:    true,
		CostBreakdown: pricing.CostBreakdown{
			BaseRate: 35000, AddOnsCost: 1000, Discount: 3500, TotalCost: 32500,
		},
	}

	svc.EXPECT().Accept(gomock.Any(), "bk-1", "st-1").Return(cost, nil)

	req := as(httptest.NewRequest(http.MethodPost, "/bookings/bk-1/accept", nil), "st-1", constant.RoleSitter)
	rec := serve(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cost, decode[dto.CostResponse](t, rec))
	assert.JSONEq(t,
		`{"data":{"booking_id":"bk-1","sitter_id":"st-1","nights":7,"frozen":true,"base_rate":35000,"add_ons_cost":1000,"discount":3500,"total_cost":32500}}`,
		rec.Body.String())
}

func TestAcceptBooking_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		role     string
		err      error
		wantCode int
	}{
		{name: "already taken", userID: "st-2", role: constant.RoleSitter, err: failure.Conflict("booking already taken"), wantCode: http.StatusConflict},
		{name: "not offered", userID: "st-9", role: constant.RoleSitter, err: failure.NotFound("booking recipient"), wantCode: http.StatusNotFound},
		{name: "admin cannot accept", userID: "ad-1", role: constant.RoleAdmin, wantCode: http.StatusForbidden},
		{name: "anonymous", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)

			if tt.err != nil {
				svc.EXPECT().Accept(gomock.Any(), "bk-1", tt.userID).Return(dto.CostResponse{}, tt.err)
			}

			req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/accept", nil)
			if tt.userID != "" {
				req = as(req, tt.userID, tt.role)
			}

			rec := serve(router, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestDeclineBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Decline(gomock.Any(), "bk-1", "st-2").Return(nil)

	rec := serve(router, as(httptest.NewRequest(http.MethodPost, "/bookings/bk-1/decline", nil), "st-2", constant.RoleSitter))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Booking declined"}`, rec.Body.String())
}

func TestCancelBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Cancel(gomock.Any(), "bk-1", dto.CancelBookingRequest{Reason: "customer request"}).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/cancel", strings.NewReader(`{"reason":"customer request"}`))
	rec := serve(router, as(req, "ad-1", constant.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, as(httptest.NewRequest(http.MethodPost, "/bookings/bk-1/cancel", strings.NewReader(`{}`)), "ad-1", constant.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverrideBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Override(gomock.Any(), "bk-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, req dto.OverrideBookingRequest) error {
			require.NotNil(t, req.PaymentStatus)
			assert.Equal(t, model.PaymentRefunded, *req.PaymentStatus)
			assert.Nil(t, req.StartDate)

			return nil
		})

	body := `{"payment_status":"REFUNDED","reason":"refund issued"}`
	rec := serve(router, as(httptest.NewRequest(http.MethodPatch, "/bookings/bk-1/override", strings.NewReader(body)), "ad-1", constant.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCost(t *testing.T) {
	t.Run("admin quotes for the requested sitter", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Cost(gomock.Any(), "bk-1", "st-2").Return(dto.CostResponse{BookingID: "bk-1", SitterID: "st-2"}, nil)

		rec := serve(router, as(httptest.NewRequest(http.MethodGet, "/bookings/bk-1/cost?sitter_id=st-2", nil), "ad-1", constant.RoleAdmin))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "st-2", decode[dto.CostResponse](t, rec).SitterID)
	})

	t.Run("sitter always quotes its own card", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Get(gomock.Any(), "bk-1").Return(dto.BookingResponse{ID: "bk-1"}, nil)
		svc.EXPECT().Cost(gomock.Any(), "bk-1", "st-1").Return(dto.CostResponse{BookingID: "bk-1", SitterID: "st-1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/bookings/bk-1/cost?sitter_id=st-2", nil)
		rec := serve(router, as(req, "st-1", constant.RoleSitter))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sitter never offered the booking", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Get(gomock.Any(), "bk-1").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

		rec := serve(router, as(httptest.NewRequest(http.MethodGet, "/bookings/bk-1/cost", nil), "st-9", constant.RoleSitter))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetBookings_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, model.FieldStartDate, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)
			require.Len(t, filter.Filters, 2)
			assert.Equal(t, model.FieldStatus, filter.Filters[0].(gDto.Filter).Field)
			assert.Equal(t, model.FieldCounty, filter.Filters[1].(gDto.Filter).Field)

			return dto.GetBookingsResponse{TotalData: 1}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/bookings?page=2&sort_by=start_date&sort_dir=asc&status=ACCEPTED&county=Kent", nil)
	rec := serve(router, as(req, "ad-1", constant.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOpportunities(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Opportunities(gomock.Any(), "st-1", gomock.Any()).Return(dto.GetBookingsResponse{TotalData: 3}, nil)

	rec := serve(router, as(httptest.NewRequest(http.MethodGet, "/bookings/opportunities", nil), "st-1", constant.RoleSitter))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[dto.GetBookingsResponse](t, rec).TotalData)
}

func TestGetOverrides(t *testing.T) {
	svc, router := newRouter(t)

	t.Run("audit trail", func(t *testing.T) {
		svc.EXPECT().Overrides(gomock.Any(), "bk-1").Return([]dto.OverrideResponse{
			{ID: "ov-1", AdminID: "ad-1", Action: "cancel", Reason: "duplicate request"},
		}, nil)

		rec := serve(router, as(httptest.NewRequest(http.MethodGet, "/bookings/bk-1/overrides", nil), "ad-1", constant.RoleAdmin))

		require.Equal(t, http.StatusOK, rec.Code)

		overrides := decode[[]dto.OverrideResponse](t, rec)
		require.Len(t, overrides, 1)
		assert.Equal(t, "duplicate request", overrides[0].Reason)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc.EXPECT().Overrides(gomock.Any(), "missing").Return(nil, failure.NotFound("booking not found"))

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/bookings/missing/overrides", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
