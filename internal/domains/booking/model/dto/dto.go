package dto

import (
	"encoding/json"
	"fmt"
	"sitterhub/internal/domains/booking/model"
	"sitterhub/internal/pricing"
	"sitterhub/shared"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
	gModel "sitterhub/shared/model"
	"sitterhub/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CustomerRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type PetRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Breed string `json:"breed" validate:"omitempty,max=100"`
	Age   *int   `json:"age"   validate:"omitempty,gte=0,lte=40"`
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

type StayRequest struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date"   validate:"required,date"`
	County    string `json:"county"     validate:"required,max=100"`
}

type CreateBookingRequest struct {
	Customer          CustomerRequest `json:"customer"            validate:"required"`
	Pet               PetRequest      `json:"pet"                 validate:"required"`
	Booking           StayRequest     `json:"booking"             validate:"required"`
	SelectedSitterIDs []string        `json:"selected_sitter_ids" validate:"required,min=1,max=50,unique,dive,required"`
	SelectedAddonIDs  []string        `json:"selected_addon_ids"  validate:"omitempty,unique,dive,required"`
}

// StayDates parses the requested range and rejects ranges that do not end after they start.
func StayDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := timezone.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("start_date must be a date in YYYY-MM-DD format")
	}

	endDate, err := timezone.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("end_date must be a date in YYYY-MM-DD format")
	}

	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("end_date must be after start_date")
	}

	return startDate, endDate, nil
}

func (c *CreateBookingRequest) ToModel(user string) (model.Submission, error) {
	start, end, err := StayDates(c.Booking.StartDate, c.Booking.EndDate)
	if err != nil {
		return model.Submission{}, err
	}

	now := timezone.Now()
	bookingID := uuid.NewString()
	metadata := gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user}

	submission := model.Submission{
		Booking: model.Booking{
			ID:            bookingID,
			CustomerName:  c.Customer.Name,
			CustomerEmail: c.Customer.Email,
			County:        c.Booking.County,
			StartDate:     start,
			EndDate:       end,
			Status:        model.StatusPending,
			PaymentStatus: model.PaymentUnpaid,
			Metadata:      metadata,
		},
		Pets: []model.Pet{{
			ID:        uuid.NewString(),
			BookingID: bookingID,
			Name:      c.Pet.Name,
			Breed:     c.Pet.Breed,
			Age:       c.Pet.Age,
			Notes:     c.Pet.Notes,
			CreatedAt: now,
		}},
		Recipients: make([]model.Recipient, len(c.SelectedSitterIDs)),
		Addons:     make([]model.AddonSelection, len(c.SelectedAddonIDs)),
	}

	for i, sitterID := range c.SelectedSitterIDs {
		submission.Recipients[i] = model.Recipient{
			ID:        uuid.NewString(),
			BookingID: bookingID,
			SitterID:  sitterID,
			Status:    model.RecipientNotified,
			Metadata:  metadata,
		}
	}

	for i, addonID := range c.SelectedAddonIDs {
		submission.Addons[i] = model.AddonSelection{
			ID:        uuid.NewString(),
			BookingID: bookingID,
			AddonID:   addonID,
			CreatedAt: now,
		}
	}

	return submission, nil
}

type CreateBookingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type PetResponse struct {
	Name  string `json:"name"`
	Breed string `json:"breed,omitempty"`
	Age   *int   `json:"age,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type RecipientResponse struct {
	SitterID string `json:"sitter_id"`
	Status   string `json:"status"`
}

type AddonResponse struct {
	AddonID             string `json:"addon_id"`
	PriceCentsAtBooking *int64 `json:"price_cents_at_booking"`
}

type BookingResponse struct {
	ID                     string              `json:"id"`
	CustomerName           string              `json:"customer_name"`
	CustomerEmail          string              `json:"customer_email,omitempty"`
	County                 string              `json:"county"`
	StartDate              string              `json:"start_date"`
	EndDate                string              `json:"end_date"`
	Nights                 int                 `json:"nights"`
	Status                 string              `json:"status"`
	AssignedSitterID       *string             `json:"assigned_sitter_id"`
	BaseRateAtBookingCents *int64              `json:"base_rate_at_booking_cents"`
	AddonsTotalCostCents   *int64              `json:"addons_total_cost_cents"`
	DiscountAppliedCents   *int64              `json:"discount_applied_cents"`
	TotalCostCents         *int64              `json:"total_cost_cents"`
	PaymentStatus          string              `json:"payment_status"`
	Pets                   []PetResponse       `json:"pets,omitempty"`
	Recipients             []RecipientResponse `json:"recipients,omitempty"`
	Addons                 []AddonResponse     `json:"addons,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.CustomerName = mod.CustomerName
	r.CustomerEmail = mod.CustomerEmail
	r.County = mod.County
	r.StartDate = timezone.FormatDate(mod.StartDate)
	r.EndDate = timezone.FormatDate(mod.EndDate)
	r.Nights = pricing.Nights(mod.StartDate, mod.EndDate)
	r.Status = mod.Status
	r.AssignedSitterID = mod.AssignedSitterID
	r.BaseRateAtBookingCents = mod.BaseRateAtBookingCents
	r.AddonsTotalCostCents = mod.AddonsTotalCostCents
	r.DiscountAppliedCents = mod.DiscountAppliedCents
	r.TotalCostCents = mod.TotalCostCents
	r.PaymentStatus = mod.PaymentStatus
	r.Metadata.FromModel(mod.Metadata)
}

func (r *BookingResponse) WithDetails(pets []model.Pet, recipients []model.Recipient, addons []model.AddonSelection) {
	r.Pets = make([]PetResponse, len(pets))
	for i, pet := range pets {
		r.Pets[i] = PetResponse{Name: pet.Name, Breed: pet.Breed, Age: pet.Age, Notes: pet.Notes}
	}

	r.Recipients = make([]RecipientResponse, len(recipients))
	for i, recipient := range recipients {
		r.Recipients[i] = RecipientResponse{SitterID: recipient.SitterID, Status: recipient.Status}
	}

	r.Addons = make([]AddonResponse, len(addons))
	for i, addon := range addons {
		r.Addons[i] = AddonResponse{AddonID: addon.AddonID, PriceCentsAtBooking: addon.PriceCentsAtBooking}
	}
}

// Redact drops what a sitter must not see before accepting.
func (r *BookingResponse) Redact() {
	r.CustomerEmail = constant.Empty
	r.Recipients = nil
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CostResponse struct {
	BookingID string `json:"booking_id"`
	SitterID  string `json:"sitter_id"`
	Nights    int    `json:"nights"`
	// Frozen is true when the values come from the snapshot taken at acceptance.
	Frozen bool `json:"frozen"`
	pricing.CostBreakdown
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// OverrideBookingRequest is an administrative write. It never re-runs pricing.
type OverrideBookingRequest struct {
	StartDate              *string `json:"start_date"                 validate:"omitempty,date"`
	EndDate                *string `json:"end_date"                   validate:"omitempty,date"`
	Status                 *string `json:"status"                     validate:"omitempty,oneof=PENDING_SITTER_ACCEPTANCE ACCEPTED DECLINED EXPIRED_UNCLAIMED CANCELED_BY_ADMIN COMPLETED"`
	PaymentStatus          *string `json:"payment_status"             validate:"omitempty,oneof=UNPAID PAID REFUNDED"`
	AssignedSitterID       *string `json:"assigned_sitter_id"         validate:"omitempty,max=64"`
	BaseRateAtBookingCents *int64  `json:"base_rate_at_booking_cents" validate:"omitempty,gte=0"`
	AddonsTotalCostCents   *int64  `json:"addons_total_cost_cents"    validate:"omitempty,gte=0"`
	DiscountAppliedCents   *int64  `json:"discount_applied_cents"     validate:"omitempty,gte=0"`
	TotalCostCents         *int64  `json:"total_cost_cents"           validate:"omitempty,gte=0"`
	Reason                 string  `json:"reason"                     validate:"required,max=500"`
}

// Changes maps the supplied fields to columns, checking the resulting date range against current.
func (r *OverrideBookingRequest) Changes(current model.Booking) (map[string]any, error) {
	changes := map[string]any{}

	start, end := current.StartDate, current.EndDate
	if r.StartDate != nil {
		parsed, err := timezone.ParseDate(*r.StartDate)
		if err != nil {
			return nil, failure.BadRequest(err)
		}

		start = parsed
		changes[model.FieldStartDate] = parsed
	}

	if r.EndDate != nil {
		parsed, err := timezone.ParseDate(*r.EndDate)
		if err != nil {
			return nil, failure.BadRequest(err)
		}

		end = parsed
		changes[model.FieldEndDate] = parsed
	}

	if (r.StartDate != nil || r.EndDate != nil) && !end.After(start) {
		return nil, failure.BadRequestFromString("end_date must be after start_date")
	}

	optional := map[string]any{
		model.FieldStatus:                 r.Status,
		model.FieldPaymentStatus:          r.PaymentStatus,
		model.FieldAssignedSitterID:       r.AssignedSitterID,
		model.FieldBaseRateAtBookingCents: r.BaseRateAtBookingCents,
		model.FieldAddonsTotalCostCents:   r.AddonsTotalCostCents,
		model.FieldDiscountAppliedCents:   r.DiscountAppliedCents,
		model.FieldTotalCostCents:         r.TotalCostCents,
	}

	for column, value := range optional {
		switch v := value.(type) {
		case *string:
			if v != nil {
				changes[column] = *v
			}
		case *int64:
			if v != nil {
				changes[column] = *v
			}
		}
	}

	if len(changes) == 0 {
		return nil, failure.BadRequestFromString("override must change at least one field")
	}

	supplied := 0
	for _, column := range model.FrozenCostFields {
		if _, ok := changes[column]; ok {
			supplied++
		}
	}

	if supplied != 0 && supplied != len(model.FrozenCostFields) {
		return nil, failure.BadRequestFromString("frozen cost fields must be supplied together")
	}

	return changes, nil
}

// AuditChanges renders changes for the override audit row.
func AuditChanges(changes map[string]any) (string, error) {
	audit := make(map[string]any, len(changes))
	for column, value := range changes {
		if date, ok := value.(time.Time); ok {
			value = timezone.FormatDate(date)
		}

		audit[column] = value
	}

	raw, err := json.Marshal(audit)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal override changes: %w", err)
	}

	return string(raw), nil
}

type OverrideResponse struct {
	ID        string         `json:"id"`
	AdminID   string         `json:"admin_id"`
	Action    string         `json:"action"`
	Reason    string         `json:"reason"`
	Changes   map[string]any `json:"changes"`
	CreatedAt string         `json:"created_at"`
}

func (r *OverrideResponse) FromModel(mod model.Override) {
	r.ID = mod.ID
	r.AdminID = mod.AdminID
	r.Action = mod.Action
	r.Reason = mod.Reason
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)

	r.Changes = map[string]any{}
	if mod.Changes == constant.Empty {
		return
	}

	if err := json.Unmarshal([]byte(mod.Changes), &r.Changes); err != nil {
		log.Warn().Err(err).Str("override_id", mod.ID).Msg("unreadable override changes")

		r.Changes = map[string]any{}
	}
}

func NewOverride(bookingID, adminID, action, reason, changes string) model.Override {
	return model.Override{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		AdminID:   adminID,
		Action:    action,
		Reason:    reason,
		Changes:   changes,
		CreatedAt: timezone.Now(),
	}
}
