package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sitterhub/infras/otel"
	"sitterhub/infras/postgres"
	"sitterhub/internal/domains/booking/model"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	gRepo "sitterhub/shared/repository"
	"sitterhub/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	argExpectedStatus = "expected_status"
	argCancelable     = "cancelable"
	argCutoff         = "cutoff"

	lockBookingQuery = "SELECT 1 FROM bookings WHERE id = $1 FOR UPDATE"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetPets(ctx context.Context, bookingID string) ([]model.Pet, error)
	GetRecipients(ctx context.Context, bookingID string) ([]model.Recipient, error)
	GetRecipient(ctx context.Context, bookingID, sitterID string) (model.Recipient, error)
	GetAddons(ctx context.Context, bookingID string) ([]model.AddonSelection, error)
	GetOverrides(ctx context.Context, bookingID string) ([]model.Override, error)
	Create(ctx context.Context, submission model.Submission) error
	Accept(ctx context.Context, acceptance model.Acceptance) error
	Decline(ctx context.Context, bookingID, sitterID string, autoDecline bool) (bookingDeclined bool, err error)
	Cancel(ctx context.Context, audit model.Override) error
	Override(ctx context.Context, expectedStatus string, changes map[string]any, audit model.Override) error
	ExpireCreatedBefore(ctx context.Context, cutoff time.Time, user string) ([]string, error)
	CompleteEndedBefore(ctx context.Context, date time.Time, user string) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	pets       gRepo.Repository[model.Pet]
	recipients gRepo.Repository[model.Recipient]
	addons     gRepo.Repository[model.AddonSelection]
	overrides  gRepo.Repository[model.Override]
	db         *postgres.Connection
	otel       otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		pets:       gRepo.NewRepository[model.Pet](model.PetEntityName, model.PetTableName, model.FieldID, db, otel),
		recipients: gRepo.NewRepository[model.Recipient](model.RecipientEntityName, model.RecipientTableName, model.FieldID, db, otel),
		addons:     gRepo.NewRepository[model.AddonSelection](model.AddonEntityName, model.AddonTableName, model.FieldID, db, otel),
		overrides:  gRepo.NewRepository[model.Override](model.OverrideEntityName, model.OverrideTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func eq(table, field string, value any) gDto.Filter {
	return gDto.Filter{Field: field, Operator: gDto.FilterOperatorEq, Value: value, Table: table}
}

func and(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func byBooking(table, bookingID string) gDto.FilterGroup {
	return and(eq(table, model.FieldBookingID, bookingID))
}

func stamp(fields map[string]any, user string, at time.Time) map[string]any {
	fields[constant.FieldModifiedAt] = at
	fields[constant.FieldModifiedBy] = user

	return fields
}

func (r *repositoryImpl) GetPets(ctx context.Context, bookingID string) ([]model.Pet, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetPets")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return r.pets.GetAll(ctx, params, byBooking(model.PetTableName, bookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetRecipients(ctx context.Context, bookingID string) ([]model.Recipient, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetRecipients")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return r.recipients.GetAll(ctx, params, byBooking(model.RecipientTableName, bookingID)) //nolint:wrapcheck
}

// GetRecipient returns a zero Recipient when the sitter was never notified of the booking.
func (r *repositoryImpl) GetRecipient(ctx context.Context, bookingID, sitterID string) (model.Recipient, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetRecipient")
	defer scope.End()

	filter := and(
		eq(model.RecipientTableName, model.FieldBookingID, bookingID),
		eq(model.RecipientTableName, model.FieldSitterID, sitterID),
	)

	return r.recipients.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAddons(ctx context.Context, bookingID string) ([]model.AddonSelection, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAddons")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return r.addons.GetAll(ctx, params, byBooking(model.AddonTableName, bookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetOverrides(ctx context.Context, bookingID string) ([]model.Override, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetOverrides")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	return r.overrides.GetAll(ctx, params, byBooking(model.OverrideTableName, bookingID)) //nolint:wrapcheck
}

// Create writes the booking with its pets, recipients and add-on selections in one transaction.
func (r *repositoryImpl) Create(ctx context.Context, submission model.Submission) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, submission.Booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if len(submission.Pets) > 0 {
			if err := r.pets.InsertBulkTx(ctx, tx, submission.Pets); err != nil {
				return fmt.Errorf("failed to insert pets: %w", err)
			}
		}

		if err := r.recipients.InsertBulkTx(ctx, tx, submission.Recipients); err != nil {
			return fmt.Errorf("failed to insert recipients: %w", err)
		}

		if len(submission.Addons) > 0 {
			if err := r.addons.InsertBulkTx(ctx, tx, submission.Addons); err != nil {
				return fmt.Errorf("failed to insert add-on selections: %w", err)
			}
		}

		return nil
	})
}

// Accept claims a pending booking for one sitter and freezes its cost. The booking update is
// conditional on the pending status, so of two concurrent accepts exactly one matches a row.
// Any guard that matches nothing rolls the whole transaction back with gRepo.ErrNoRowsAffected.
func (r *repositoryImpl) Accept(ctx context.Context, acceptance model.Acceptance) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"booking_id": acceptance.BookingID,
		"sitter_id":  acceptance.SitterID,
	})

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		cost := acceptance.Cost
		fields := stamp(map[string]any{
			model.FieldStatus:                 model.StatusAccepted,
			model.FieldAssignedSitterID:       acceptance.SitterID,
			model.FieldBaseRateAtBookingCents: cost.BaseRate,
			model.FieldAddonsTotalCostCents:   cost.AddOnsCost,
			model.FieldDiscountAppliedCents:   cost.Discount,
			model.FieldTotalCostCents:         cost.TotalCost,
		}, acceptance.SitterID, acceptance.AcceptedAt)

		claimed, err := r.UpdateTxAffected(ctx, tx, fields, and(
			eq(model.TableName, model.FieldID, acceptance.BookingID),
			gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		))
		if err != nil {
			return fmt.Errorf("failed to claim booking: %w", err)
		}

		if claimed == 0 {
			return fmt.Errorf("booking %s is no longer pending: %w", acceptance.BookingID, gRepo.ErrNoRowsAffected)
		}

		recipient := stamp(map[string]any{model.FieldStatus: model.RecipientAccepted}, acceptance.SitterID, acceptance.AcceptedAt)

		marked, err := r.recipients.UpdateTxAffected(ctx, tx, recipient, and(
			eq(model.RecipientTableName, model.FieldBookingID, acceptance.BookingID),
			eq(model.RecipientTableName, model.FieldSitterID, acceptance.SitterID),
			gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.RecipientNotified, Table: model.RecipientTableName},
		))
		if err != nil {
			return fmt.Errorf("failed to mark recipient accepted: %w", err)
		}

		if marked == 0 {
			return fmt.Errorf("sitter %s cannot accept booking %s: %w", acceptance.SitterID, acceptance.BookingID, gRepo.ErrNoRowsAffected)
		}

		for addonID, price := range acceptance.AddonPrices {
			err := r.addons.UpdateTx(ctx, tx, map[string]any{model.FieldPriceCentsAtBooking: price}, and(
				eq(model.AddonTableName, model.FieldBookingID, acceptance.BookingID),
				eq(model.AddonTableName, model.FieldAddonID, addonID),
			))
			if err != nil {
				return fmt.Errorf("failed to capture add-on price: %w", err)
			}
		}

		return nil
	})
}

// Decline marks the sitter's recipient row declined. When autoDecline is set and no recipient is
// left undecided, the booking itself moves to DECLINED in the same transaction. The booking row is
// locked first so concurrent declines on one booking serialize and the last one sees every decline.
func (r *repositoryImpl) Decline(ctx context.Context, bookingID, sitterID string, autoDecline bool) (bookingDeclined bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, lockBookingQuery, bookingID); err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		now := timezone.Now()

		declined, err := r.recipients.UpdateTxAffected(ctx, tx, stamp(map[string]any{model.FieldStatus: model.RecipientDeclined}, sitterID, now), and(
			eq(model.RecipientTableName, model.FieldBookingID, bookingID),
			eq(model.RecipientTableName, model.FieldSitterID, sitterID),
			gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.RecipientNotified, Table: model.RecipientTableName},
		))
		if err != nil {
			return fmt.Errorf("failed to mark recipient declined: %w", err)
		}

		if declined == 0 {
			return fmt.Errorf("sitter %s cannot decline booking %s: %w", sitterID, bookingID, gRepo.ErrNoRowsAffected)
		}

		if !autoDecline {
			return nil
		}

		undecided := fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM %s WHERE %s.%s = %s.%s AND %s.%s <> '%s')",
			model.RecipientTableName,
			model.RecipientTableName, model.FieldBookingID, model.TableName, model.FieldID,
			model.RecipientTableName, model.FieldStatus, model.RecipientDeclined,
		)

		affected, err := r.UpdateTxAffected(ctx, tx, stamp(map[string]any{model.FieldStatus: model.StatusDeclined}, sitterID, now), and(
			eq(model.TableName, model.FieldID, bookingID),
			gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
			gDto.Filter{Operator: gDto.FilterPlainQuery, Value: undecided},
		))
		if err != nil {
			return fmt.Errorf("failed to decline booking: %w", err)
		}

		bookingDeclined = affected > 0

		return nil
	})

	return bookingDeclined, err
}

// Cancel moves a pending or accepted booking to CANCELED_BY_ADMIN and records the audit row.
func (r *repositoryImpl) Cancel(ctx context.Context, audit model.Override) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		fields := stamp(map[string]any{model.FieldStatus: model.StatusCanceled}, audit.AdminID, audit.CreatedAt)

		affected, err := r.UpdateTxAffected(ctx, tx, fields, and(
			eq(model.TableName, model.FieldID, audit.BookingID),
			gDto.Filter{ArgName: argCancelable, Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: model.Cancelable, Table: model.TableName},
		))
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		if affected == 0 {
			return fmt.Errorf("booking %s cannot be canceled: %w", audit.BookingID, gRepo.ErrNoRowsAffected)
		}

		if err := r.overrides.InsertTx(ctx, tx, audit); err != nil {
			return fmt.Errorf("failed to record cancellation: %w", err)
		}

		return nil
	})
}

// Override writes booking columns and records the audit row. The write applies only while the
// booking is still in expectedStatus, the status the override was checked against.
func (r *repositoryImpl) Override(ctx context.Context, expectedStatus string, changes map[string]any, audit model.Override) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Override")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := r.UpdateTxAffected(ctx, tx, stamp(changes, audit.AdminID, audit.CreatedAt), and(
			eq(model.TableName, model.FieldID, audit.BookingID),
			gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: expectedStatus, Table: model.TableName},
		))
		if err != nil {
			return fmt.Errorf("failed to override booking: %w", err)
		}

		if affected == 0 {
			return fmt.Errorf("booking %s left status %s: %w", audit.BookingID, expectedStatus, gRepo.ErrNoRowsAffected)
		}

		if err := r.overrides.InsertTx(ctx, tx, audit); err != nil {
			return fmt.Errorf("failed to record override: %w", err)
		}

		return nil
	})
}

// ExpireCreatedBefore moves pending bookings created before cutoff to EXPIRED_UNCLAIMED and returns their ids.
func (r *repositoryImpl) ExpireCreatedBefore(ctx context.Context, cutoff time.Time, user string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ExpireCreatedBefore")
	defer scope.End()

	fields := stamp(map[string]any{model.FieldStatus: model.StatusExpired}, user, timezone.Now())

	return r.UpdateReturning(ctx, fields, and( //nolint:wrapcheck
		gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		gDto.Filter{ArgName: argCutoff, Field: model.FieldCreatedAt, Operator: gDto.FilterOperatorLess, Value: cutoff, Table: model.TableName},
	), model.FieldID)
}

// CompleteEndedBefore moves accepted bookings whose stay ended before date to COMPLETED and returns their ids.
func (r *repositoryImpl) CompleteEndedBefore(ctx context.Context, date time.Time, user string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CompleteEndedBefore")
	defer scope.End()

	fields := stamp(map[string]any{model.FieldStatus: model.StatusCompleted}, user, timezone.Now())

	return r.UpdateReturning(ctx, fields, and( //nolint:wrapcheck
		gDto.Filter{ArgName: argExpectedStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusAccepted, Table: model.TableName},
		gDto.Filter{ArgName: argCutoff, Field: model.FieldEndDate, Operator: gDto.FilterOperatorLess, Value: date, Table: model.TableName},
	), model.FieldID)
}
