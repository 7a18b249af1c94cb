package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitterhub/internal/domains/booking/model"
	"sitterhub/internal/domains/booking/model/dto"
	"sitterhub/internal/pricing"
	"sitterhub/shared/failure"
	"sitterhub/shared/validator"
)

func validRequest() dto.CreateBookingRequest {
	age := 4

	return dto.CreateBookingRequest{
		Customer:          dto.CustomerRequest{Name: "Dana", Email: "dana@example.com"},
		Pet:               dto.PetRequest{Name: "Biscuit", Age: &age},
		Booking:           dto.StayRequest{StartDate: "2024-06-01", EndDate: "2024-06-04", County: "Kent"},
		SelectedSitterIDs: []string{"st-1", "st-2"},
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.CreateBookingRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*dto.CreateBookingRequest) {}},
		{name: "no sitters", mutate: func(req *dto.CreateBookingRequest) { req.SelectedSitterIDs = nil }, wantErr: true},
		{name: "duplicate sitters", mutate: func(req *dto.CreateBookingRequest) { req.SelectedSitterIDs = []string{"st-1", "st-1"} }, wantErr: true},
		{name: "bad email", mutate: func(req *dto.CreateBookingRequest) { req.Customer.Email = "dana" }, wantErr: true},
		{name: "bad date", mutate: func(req *dto.CreateBookingRequest) { req.Booking.StartDate = "06/01/2024" }, wantErr: true},
		{name: "missing pet name", mutate: func(req *dto.CreateBookingRequest) { req.Pet.Name = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestStayDates(t *testing.T) {
	start, end, err := dto.StayDates("2024-06-01", "2024-06-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), end)

	_, _, err = dto.StayDates("2024-06-04", "2024-06-04")
	assert.Equal(t, 400, failure.GetCode(err))

	_, _, err = dto.StayDates("2024-06-04", "2024-06-01")
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := validRequest()
	req.SelectedAddonIDs = []string{"walk"}

	submission, err := req.ToModel("guest")
	require.NoError(t, err)

	booking := submission.Booking
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.PaymentUnpaid, booking.PaymentStatus)

	_, frozen := pricing.Frozen(booking.FrozenCost())
	assert.False(t, frozen)

	assert.Equal(t, []string{"st-1", "st-2"}, submission.SitterIDs())
	require.Len(t, submission.Addons, 1)
	assert.Equal(t, booking.ID, submission.Addons[0].BookingID)
	assert.Equal(t, 4, *submission.Pets[0].Age)
}

func TestBookingResponse_Redact(t *testing.T) {
	var res dto.BookingResponse

	res.FromModel(model.Booking{
		ID:            "bk-1",
		CustomerEmail: "dana@example.com",
		StartDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	})
	res.WithDetails(nil, []model.Recipient{{SitterID: "st-1", Status: model.RecipientNotified}}, nil)

	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, "2024-06-01", res.StartDate)

	res.Redact()

	assert.Empty(t, res.CustomerEmail)
	assert.Nil(t, res.Recipients)
}

func TestOverrideBookingRequest_Changes(t *testing.T) {
	current := model.Booking{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	}

	start := "2024-06-02"
	status := model.StatusCompleted
	total := int64(0)

	changes, err := (&dto.OverrideBookingRequest{
		StartDate:              &start,
		Status:                 &status,
		BaseRateAtBookingCents: &total,
		AddonsTotalCostCents:   &total,
		DiscountAppliedCents:   &total,
		TotalCostCents:         &total,
	}).Changes(current)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), changes[model.FieldStartDate])
	assert.Equal(t, model.StatusCompleted, changes[model.FieldStatus])
	assert.Equal(t, int64(0), changes[model.FieldTotalCostCents])
	assert.Len(t, changes, 6)

	_, err = (&dto.OverrideBookingRequest{Status: &status, TotalCostCents: &total}).Changes(current)
	assert.EqualError(t, err, "frozen cost fields must be supplied together")

	late := "2024-06-09"
	_, err = (&dto.OverrideBookingRequest{StartDate: &late}).Changes(current)
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = (&dto.OverrideBookingRequest{}).Changes(current)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestAuditChanges(t *testing.T) {
	raw, err := dto.AuditChanges(map[string]any{
		model.FieldEndDate: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		model.FieldStatus:  model.StatusCanceled,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"end_date":"2024-06-09","status":"CANCELED_BY_ADMIN"}`, raw)

	var res dto.OverrideResponse
	res.FromModel(model.Override{ID: "ov-1", Changes: raw})
	assert.Equal(t, "2024-06-09", res.Changes[model.FieldEndDate])
}

func TestOverrideResponse_FromModel_MalformedChanges(t *testing.T) {
	var res dto.OverrideResponse
	res.FromModel(model.Override{ID: "ov-2", Action: model.OverrideActionEdit, Changes: `{"status":`})

	assert.Equal(t, "ov-2", res.ID)
	assert.Equal(t, model.OverrideActionEdit, res.Action)
	assert.NotNil(t, res.Changes)
	assert.Empty(t, res.Changes)
}
