package model

import (
	"sitterhub/internal/pricing"
	"sitterhub/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                     = "id"
	FieldCustomerName           = "customer_name"
	FieldCustomerEmail          = "customer_email"
	FieldCounty                 = "county"
	FieldStartDate              = "start_date"
	FieldEndDate                = "end_date"
	FieldStatus                 = "status"
	FieldAssignedSitterID       = "assigned_sitter_id"
	FieldBaseRateAtBookingCents = "base_rate_at_booking_cents"
	FieldAddonsTotalCostCents   = "addons_total_cost_cents"
	FieldDiscountAppliedCents   = "discount_applied_cents"
	FieldTotalCostCents         = "total_cost_cents"
	FieldPaymentStatus          = "payment_status"
	FieldCreatedAt              = "created_at"
)

// Booking statuses. Every status except PENDING_SITTER_ACCEPTANCE and ACCEPTED is terminal.
const (
	StatusPending   = "PENDING_SITTER_ACCEPTANCE"
	StatusAccepted  = "ACCEPTED"
	StatusDeclined  = "DECLINED"
	StatusExpired   = "EXPIRED_UNCLAIMED"
	StatusCanceled  = "CANCELED_BY_ADMIN"
	StatusCompleted = "COMPLETED"
)

const (
	PaymentUnpaid   = "UNPAID"
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
)

// Cancelable lists the statuses an admin can cancel from.
var Cancelable = []string{StatusPending, StatusAccepted}

// FrozenCostFields are written once at acceptance and are either all NULL or all set.
var FrozenCostFields = []string{
	FieldBaseRateAtBookingCents,
	FieldAddonsTotalCostCents,
	FieldDiscountAppliedCents,
	FieldTotalCostCents,
}

type Booking struct {
	ID                     string    `db:"id"`
	CustomerName           string    `db:"customer_name"`
	CustomerEmail          string    `db:"customer_email"`
	County                 string    `db:"county"`
	StartDate              time.Time `db:"start_date"`
	EndDate                time.Time `db:"end_date"`
	Status                 string    `db:"status"`
	AssignedSitterID       *string   `db:"assigned_sitter_id"`
	BaseRateAtBookingCents *int64    `db:"base_rate_at_booking_cents"`
	AddonsTotalCostCents   *int64    `db:"addons_total_cost_cents"`
	DiscountAppliedCents   *int64    `db:"discount_applied_cents"`
	TotalCostCents         *int64    `db:"total_cost_cents"`
	PaymentStatus          string    `db:"payment_status"`
	model.Metadata
}

func (b Booking) FrozenCost() pricing.FrozenCost {
	return pricing.FrozenCost{
		BaseRate:   b.BaseRateAtBookingCents,
		AddOnsCost: b.AddonsTotalCostCents,
		Discount:   b.DiscountAppliedCents,
		TotalCost:  b.TotalCostCents,
	}
}

func (b Booking) Stay(addonIDs []string) pricing.Stay {
	return pricing.Stay{StartDate: b.StartDate, EndDate: b.EndDate, AddonIDs: addonIDs}
}

func (b Booking) IsAssignedTo(sitterID string) bool {
	return b.AssignedSitterID != nil && *b.AssignedSitterID == sitterID
}

const (
	PetTableName  = "booking_pets"
	PetEntityName = "booking_pet"
)

type Pet struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Name      string    `db:"name"`
	Breed     string    `db:"breed"`
	Age       *int      `db:"age"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	RecipientTableName  = "booking_sitter_recipients"
	RecipientEntityName = "booking_sitter_recipient"

	FieldBookingID = "booking_id"
	FieldSitterID  = "sitter_id"
)

const (
	RecipientNotified = "NOTIFIED"
	RecipientAccepted = "ACCEPTED"
	RecipientDeclined = "DECLINED"
)

// Recipient records that a sitter was notified of a booking. Rows are never deleted.
type Recipient struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	SitterID  string `db:"sitter_id"`
	Status    string `db:"status"`
	model.Metadata
}

const (
	AddonTableName  = "booking_addons"
	AddonEntityName = "booking_addon"

	FieldAddonID             = "addon_id"
	FieldPriceCentsAtBooking = "price_cents_at_booking"
)

// AddonSelection is priced when the booking is accepted.
type AddonSelection struct {
	ID                  string    `db:"id"`
	BookingID           string    `db:"booking_id"`
	AddonID             string    `db:"addon_id"`
	PriceCentsAtBooking *int64    `db:"price_cents_at_booking"`
	CreatedAt           time.Time `db:"created_at"`
}

const (
	OverrideTableName  = "booking_overrides"
	OverrideEntityName = "booking_override"
)

const (
	OverrideActionCancel = "CANCEL"
	OverrideActionEdit   = "EDIT"
)

// Override is the audit trail of administrative writes that bypass the acceptance workflow.
type Override struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	AdminID   string    `db:"admin_id"`
	Action    string    `db:"action"`
	Reason    string    `db:"reason"`
	Changes   string    `db:"changes"`
	CreatedAt time.Time `db:"created_at"`
}

// Submission is everything written when a booking request is created.
type Submission struct {
	Booking    Booking
	Pets       []Pet
	Recipients []Recipient
	Addons     []AddonSelection
}

func (s Submission) SitterIDs() []string {
	ids := make([]string, len(s.Recipients))
	for i, recipient := range s.Recipients {
		ids[i] = recipient.SitterID
	}

	return ids
}

// Acceptance carries the values frozen onto a booking when a sitter claims it.
type Acceptance struct {
	BookingID   string
	SitterID    string
	Cost        pricing.CostBreakdown
	AddonPrices map[string]int64
	AcceptedAt  time.Time
}
