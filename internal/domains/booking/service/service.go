package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sitterhub/config"
	"sitterhub/infras/kafka"
	"sitterhub/infras/otel"
	"sitterhub/internal/domains/booking/model"
	"sitterhub/internal/domains/booking/model/dto"
	"sitterhub/internal/domains/booking/repository"
	sitterSvc "sitterhub/internal/domains/sitter/service"
	"sitterhub/internal/pricing"
	"sitterhub/shared"
	"sitterhub/shared/cache"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
	gRepo "sitterhub/shared/repository"
	"sitterhub/shared/timezone"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	argRecipientSitterID = "recipient_sitter_id"
	argRecipientStatus   = "recipient_status"
)

const (
	msgBookingTaken    = "booking already taken"
	msgBookingNotFound = "booking not found"
)

var opportunityQuery = fmt.Sprintf(
	"SELECT %s FROM %s WHERE %s = :%s AND %s = :%s",
	model.FieldBookingID, model.RecipientTableName,
	model.FieldSitterID, argRecipientSitterID,
	model.FieldStatus, argRecipientStatus,
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	// Accept claims the booking for sitterID and freezes its cost. Losing a race yields a 409.
	Accept(ctx context.Context, bookingID, sitterID string) (dto.CostResponse, error)
	Decline(ctx context.Context, bookingID, sitterID string) error
	Cancel(ctx context.Context, bookingID string, req dto.CancelBookingRequest) error
	Override(ctx context.Context, bookingID string, req dto.OverrideBookingRequest) error
	ExpireStale(ctx context.Context, cutoff time.Time) ([]string, error)
	CompleteFinished(ctx context.Context, today time.Time) ([]string, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Opportunities(ctx context.Context, sitterID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cost(ctx context.Context, bookingID, sitterID string) (dto.CostResponse, error)
	Overrides(ctx context.Context, bookingID string) ([]dto.OverrideResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	sitters   sitterSvc.Sitter
	publisher kafka.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, sitters sitterSvc.Sitter, publisher kafka.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		sitters:   sitters,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || user == constant.Empty {
		user = constant.ContextGuest
	}

	submission, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	active, err := s.sitters.ActiveCount(ctx, req.SelectedSitterIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to check selected sitters")

		return res, fmt.Errorf("failed to check selected sitters: %w", err)
	}

	if active != len(req.SelectedSitterIDs) {
		return res, failure.BadRequestFromString("selected sitters must exist and be active") // nolint:wrapcheck
	}

	if err = s.repo.Create(ctx, submission); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking := submission.Booking

	log.Info().Str("booking_id", booking.ID).Int("recipients", len(submission.Recipients)).Msg("booking created")

	s.invalidate(ctx, booking.ID)
	s.publish(ctx, model.Event{
		Type:      model.EventCreated,
		BookingID: booking.ID,
		SitterIDs: submission.SitterIDs(),
		Status:    booking.Status,
	})

	return dto.CreateBookingResponse{ID: booking.ID, Status: booking.Status}, nil
}

func (s *serviceImpl) Accept(ctx context.Context, bookingID, sitterID string) (res dto.CostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return res, err
	}

	recipient, err := s.recipient(ctx, bookingID, sitterID)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusPending || recipient.Status != model.RecipientNotified {
		log.Warn().Str("booking_id", bookingID).Str("sitter_id", sitterID).Str("status", booking.Status).Msg("accept rejected")

		return res, failure.Conflict(msgBookingTaken) // nolint:wrapcheck
	}

	card, err := s.sitters.RateCard(ctx, sitterID)
	if err != nil {
		return res, fmt.Errorf("failed to read rate card: %w", err)
	}

	addonIDs, err := s.addonIDs(ctx, bookingID)
	if err != nil {
		return res, err
	}

	cost := pricing.ComputeCost(booking.Stay(addonIDs), card)

	err = s.repo.Accept(ctx, model.Acceptance{
		BookingID:   bookingID,
		SitterID:    sitterID,
		Cost:        cost,
		AddonPrices: pricing.AddonPrices(card, addonIDs),
		AcceptedAt:  timezone.Now(),
	})
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		log.Warn().Str("booking_id", bookingID).Str("sitter_id", sitterID).Msg("accept lost the race")

		return res, failure.Conflict(msgBookingTaken) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Str("sitter_id", sitterID).Msg("failed to accept booking")

		return res, fmt.Errorf("failed to accept booking: %w", err)
	}

	log.Info().Str("booking_id", bookingID).Str("sitter_id", sitterID).Int64("total_cost", cost.TotalCost).Msg("booking accepted")

	s.invalidate(ctx, bookingID)
	s.publish(ctx, model.Event{
		Type:      model.EventAccepted,
		BookingID: bookingID,
		SitterID:  sitterID,
		Status:    model.StatusAccepted,
	})

	return dto.CostResponse{
		BookingID:     bookingID,
		SitterID:      sitterID,
		Nights:        pricing.Nights(booking.StartDate, booking.EndDate),
		Frozen:        true,
		CostBreakdown: cost,
	}, nil
}

func (s *serviceImpl) Decline(ctx context.Context, bookingID, sitterID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, bookingID); err != nil {
		return err
	}

	if _, err = s.recipient(ctx, bookingID, sitterID); err != nil {
		return err
	}

	declined, err := s.repo.Decline(ctx, bookingID, sitterID, s.cfg.Booking.AutoDecline)
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return failure.Conflict("booking already answered") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Str("sitter_id", sitterID).Msg("failed to decline booking")

		return fmt.Errorf("failed to decline booking: %w", err)
	}

	log.Info().Str("booking_id", bookingID).Str("sitter_id", sitterID).Bool("booking_declined", declined).Msg("booking declined by sitter")

	s.invalidate(ctx, bookingID)
	s.publish(ctx, model.Event{
		Type:      model.EventRecipientDecline,
		BookingID: bookingID,
		SitterID:  sitterID,
		Status:    model.RecipientDeclined,
	})

	if declined {
		s.publish(ctx, model.Event{Type: model.EventDeclined, BookingID: bookingID, Status: model.StatusDeclined})
	}

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, bookingID string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return err
	}

	changes, err := dto.AuditChanges(map[string]any{model.FieldStatus: model.StatusCanceled})
	if err != nil {
		return err
	}

	err = s.repo.Cancel(ctx, dto.NewOverride(bookingID, admin, model.OverrideActionCancel, req.Reason, changes))
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return failure.Conflict(fmt.Sprintf("booking in status %s cannot be canceled", booking.Status)) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	log.Info().Str("booking_id", bookingID).Str("admin_id", admin).Msg("booking canceled")

	s.invalidate(ctx, bookingID)
	s.publish(ctx, model.Event{Type: model.EventCanceled, BookingID: bookingID, Status: model.StatusCanceled})

	return nil
}

func (s *serviceImpl) Override(ctx context.Context, bookingID string, req dto.OverrideBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Override")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return err
	}

	changes, err := req.Changes(booking)
	if err != nil {
		return err
	}

	if err = checkOverride(booking, changes); err != nil {
		return err
	}

	audit, err := dto.AuditChanges(changes)
	if err != nil {
		return err
	}

	err = s.repo.Override(ctx, booking.Status, changes, dto.NewOverride(bookingID, admin, model.OverrideActionEdit, req.Reason, audit))
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return failure.Conflict(fmt.Sprintf("booking is no longer %s, refresh before overriding", booking.Status)) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to override booking")

		return fmt.Errorf("failed to override booking: %w", err)
	}

	log.Info().Str("booking_id", bookingID).Str("admin_id", admin).Str("changes", audit).Msg("booking overridden")

	status := booking.Status
	if req.Status != nil {
		status = *req.Status
	}

	s.invalidate(ctx, bookingID)
	s.publish(ctx, model.Event{Type: model.EventOverridden, BookingID: bookingID, Status: status})

	return nil
}

// checkOverride keeps an override inside the booking invariants. A booking that left PENDING never
// returns to it, a pending booking carries no assignment and no frozen cost, and an accepted or
// completed booking carries the full frozen cost.
func checkOverride(booking model.Booking, changes map[string]any) error {
	status := booking.Status
	if next, ok := changes[model.FieldStatus].(string); ok {
		status = next
	}

	switch status {
	case model.StatusPending:
		if booking.Status != model.StatusPending {
			return failure.BadRequestFromString(fmt.Sprintf("a %s booking cannot return to %s", booking.Status, model.StatusPending)) // nolint:wrapcheck
		}

		for _, field := range append([]string{model.FieldAssignedSitterID}, model.FrozenCostFields...) {
			if _, ok := changes[field]; ok {
				return failure.BadRequestFromString(fmt.Sprintf("%s cannot be set while the booking is %s", field, model.StatusPending)) // nolint:wrapcheck
			}
		}
	case model.StatusAccepted, model.StatusCompleted:
		if _, ok := changes[model.FieldTotalCostCents]; !ok && booking.FrozenCost().TotalCost == nil {
			return failure.BadRequestFromString(fmt.Sprintf("frozen cost fields are required when status is %s", status)) // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) ExpireStale(ctx context.Context, cutoff time.Time) (ids []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ExpireStale")
	defer scope.End()
	defer scope.TraceIfError(err)

	ids, err = s.repo.ExpireCreatedBefore(ctx, cutoff, constant.ContextSystem)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("failed to expire stale bookings")

		return nil, fmt.Errorf("failed to expire stale bookings: %w", err)
	}

	s.sweep(ctx, ids, model.EventExpired, model.StatusExpired)

	return ids, nil
}

func (s *serviceImpl) CompleteFinished(ctx context.Context, today time.Time) (ids []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CompleteFinished")
	defer scope.End()
	defer scope.TraceIfError(err)

	ids, err = s.repo.CompleteEndedBefore(ctx, timezone.DateOf(today), constant.ContextSystem)
	if err != nil {
		log.Error().Err(err).Time("today", today).Msg("failed to complete finished bookings")

		return nil, fmt.Errorf("failed to complete finished bookings: %w", err)
	}

	s.sweep(ctx, ids, model.EventCompleted, model.StatusCompleted)

	return ids, nil
}

func (s *serviceImpl) sweep(ctx context.Context, ids []string, eventType, status string) {
	if len(ids) == 0 {
		return
	}

	log.Info().Strs("booking_ids", ids).Str("status", status).Msg("bookings swept")

	events := make([]model.Event, len(ids))
	for i, id := range ids {
		s.invalidate(ctx, id)
		events[i] = model.Event{Type: eventType, BookingID: id, Status: status}
	}

	s.publish(ctx, events...)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		res, err = s.load(ctx, id)
		if err != nil {
			return res, err
		}

		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}

	return visibleTo(ctx, res)
}

func (s *serviceImpl) load(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	pets, err := s.repo.GetPets(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking pets")

		return res, fmt.Errorf("failed to get booking pets: %w", err)
	}

	recipients, err := s.repo.GetRecipients(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking recipients")

		return res, fmt.Errorf("failed to get booking recipients: %w", err)
	}

	addons, err := s.repo.GetAddons(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking add-ons")

		return res, fmt.Errorf("failed to get booking add-ons: %w", err)
	}

	res.FromModel(booking)
	res.WithDetails(pets, recipients, addons)

	return res, nil
}

// visibleTo hides bookings a sitter was never offered and redacts ones it was offered but does not hold.
func visibleTo(ctx context.Context, res dto.BookingResponse) (dto.BookingResponse, error) {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleSitter {
		return res, nil
	}

	sitterID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if res.AssignedSitterID != nil && *res.AssignedSitterID == sitterID {
		return res, nil
	}

	offered := slices.ContainsFunc(res.Recipients, func(recipient dto.RecipientResponse) bool {
		return recipient.SitterID == sitterID
	})
	if !offered {
		return dto.BookingResponse{}, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	res.Redact()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking count to cache")
	}

	return res, nil
}

// OpportunityFilter selects pending bookings on which sitterID still holds a NOTIFIED recipient row.
func OpportunityFilter(sitterID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorInQuery,
				Table:    model.TableName,
				Value: gDto.SubQuery{
					Query: opportunityQuery,
					Args: map[string]any{
						argRecipientSitterID: sitterID,
						argRecipientStatus:   model.RecipientNotified,
					},
				},
			},
		},
	}
}

// Opportunities reads straight from the database. Offers change on every accept and decline.
func (s *serviceImpl) Opportunities(ctx context.Context, sitterID string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Opportunities")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := OpportunityFilter(sitterID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to count opportunities")

		return res, fmt.Errorf("failed to count opportunities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to get opportunities")

		return res, fmt.Errorf("failed to get opportunities: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	for i := range res.Bookings {
		res.Bookings[i].Redact()
	}

	return res, nil
}

// Cost returns the frozen breakdown once a booking is accepted, and a live quote against
// sitterID's current rate card before that.
func (s *serviceImpl) Cost(ctx context.Context, bookingID, sitterID string) (res dto.CostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cost")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return res, err
	}

	res.BookingID = bookingID
	res.Nights = pricing.Nights(booking.StartDate, booking.EndDate)

	if frozen, ok := pricing.Frozen(booking.FrozenCost()); ok {
		res.Frozen = true
		res.CostBreakdown = frozen

		if booking.AssignedSitterID != nil {
			res.SitterID = *booking.AssignedSitterID
		}

		return res, nil
	}

	if sitterID == constant.Empty {
		return res, failure.BadRequestFromString("sitter_id is required to quote a pending booking") // nolint:wrapcheck
	}

	card, err := s.sitters.RateCard(ctx, sitterID)
	if err != nil {
		return res, fmt.Errorf("failed to read rate card: %w", err)
	}

	addonIDs, err := s.addonIDs(ctx, bookingID)
	if err != nil {
		return res, err
	}

	res.SitterID = sitterID
	res.CostBreakdown = pricing.ComputeCost(booking.Stay(addonIDs), card)

	return res, nil
}

func (s *serviceImpl) Overrides(ctx context.Context, bookingID string) (res []dto.OverrideResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Overrides")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, bookingID); err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetOverrides(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking overrides")

		return nil, fmt.Errorf("failed to get booking overrides: %w", err)
	}

	res = make([]dto.OverrideResponse, len(overrides))
	for i, override := range overrides {
		res[i].FromModel(override)
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) recipient(ctx context.Context, bookingID, sitterID string) (model.Recipient, error) {
	recipient, err := s.repo.GetRecipient(ctx, bookingID, sitterID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Str("sitter_id", sitterID).Msg("failed to get booking recipient")

		return recipient, fmt.Errorf("failed to get booking recipient: %w", err)
	}

	if recipient.ID == constant.Empty {
		return recipient, failure.NotFound("booking was not offered to this sitter") // nolint:wrapcheck
	}

	return recipient, nil
}

func (s *serviceImpl) addonIDs(ctx context.Context, bookingID string) ([]string, error) {
	selections, err := s.repo.GetAddons(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking add-ons")

		return nil, fmt.Errorf("failed to get booking add-ons: %w", err)
	}

	ids := make([]string, len(selections))
	for i, selection := range selections {
		ids[i] = selection.AddonID
	}

	return ids, nil
}

// invalidate runs after a committed transition and before the caller is answered, so a client
// that reads right after a transition never sees the previous state.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)
}

// publish hands events to the notification topic in the background. The publisher logs failures and
// flushes pending events on Close.
func (s *serviceImpl) publish(ctx context.Context, events ...model.Event) {
	now := timezone.Now()
	messages := make([]kafka.Message, len(events))

	for i, event := range events {
		event.OccurredAt = now
		messages[i] = kafka.Message{Key: event.BookingID, Value: event}
	}

	s.publisher.PublishAsync(ctx, s.cfg.Kafka.Topics.BookingEvents, messages...)
}
