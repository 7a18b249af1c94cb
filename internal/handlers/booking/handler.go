package booking

import (
	"net/http"
	"sitterhub/infras/otel"
	"sitterhub/internal/domains/booking/model"
	"sitterhub/internal/domains/booking/model/dto"
	"sitterhub/internal/domains/booking/service"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
	"sitterhub/shared/validator"
	"sitterhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/opportunities", handler.GetOpportunities)
		routerGroup.Get("/{bookingId}", handler.GetBookingByID)
		routerGroup.Post("/{bookingId}/accept", handler.AcceptBooking)
		routerGroup.Post("/{bookingId}/decline", handler.DeclineBooking)
		routerGroup.Post("/{bookingId}/cancel", handler.CancelBooking)
		routerGroup.Patch("/{bookingId}/override", handler.OverrideBooking)
		routerGroup.Get("/{bookingId}/overrides", handler.GetOverrides)
		routerGroup.Get("/{bookingId}/cost", handler.GetCost)
	})
}

// actingSitter reads the sitter id from the session. It is never taken from the request body.
func actingSitter(r *http.Request) (string, error) {
	role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
	sitterID, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	if role != constant.RoleSitter || sitterID == constant.Empty {
		return constant.Empty, failure.Forbidden("only sitters can answer booking requests") // nolint:wrapcheck
	}

	return sitterID, nil
}

// CreateBooking submits a booking request to the selected sitters.
// @Summary Create a booking request
// @Description Create a pending booking and notify every selected sitter. No cost is computed until a sitter accepts.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + res.ID + " created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists bookings for administrators.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Param county query string false "Filter by county"
// @Param assigned_sitter_id query string false "Filter by assigned sitter"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldCreatedAt, model.FieldStartDate, model.FieldEndDate, model.FieldTotalCostCents)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldStatus, model.FieldPaymentStatus, model.FieldCounty, model.FieldAssignedSitterID} {
		value := r.URL.Query().Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetOpportunities lists pending bookings the calling sitter can still accept or decline.
// @Summary Get open booking requests for the calling sitter
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Open requests"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/opportunities [get]
// @Security BearerAuth
func (handler *Handler) GetOpportunities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOpportunities")
	defer scope.End()

	sitterID, err := actingSitter(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldCreatedAt, model.FieldStartDate, model.FieldEndDate, model.FieldTotalCostCents)

	bookings, err := handler.service.Opportunities(ctx, sitterID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to get opportunities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Administrators see every booking. Sitters see bookings they were offered, with customer contact details only once assigned.
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamBookingID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// AcceptBooking claims a pending booking for the calling sitter and freezes its cost.
// @Summary Accept a booking request
// @Description The first sitter to accept wins. Every later accept receives 409.
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[dto.CostResponse] "Frozen cost breakdown"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/accept [post]
// @Security BearerAuth
func (handler *Handler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptBooking")
	defer scope.End()

	sitterID, err := actingSitter(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamBookingID)

	cost, err := handler.service.Accept(ctx, id, sitterID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Str("sitter_id", sitterID).Msg("failed to accept booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + id + " accepted by sitter " + sitterID)

	response.WithJSON(w, http.StatusOK, cost)
}

// DeclineBooking records the calling sitter's decline. Other sitters can still accept.
// @Summary Decline a booking request
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Message "Booking declined"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/decline [post]
// @Security BearerAuth
func (handler *Handler) DeclineBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeclineBooking")
	defer scope.End()

	sitterID, err := actingSitter(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamBookingID)

	if err = handler.service.Decline(ctx, id, sitterID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Str("sitter_id", sitterID).Msg("failed to decline booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking declined")
}

// CancelBooking cancels a pending or accepted booking.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param request body dto.CancelBookingRequest true "Cancel Booking Request"
// @Success 200 {object} response.Message "Booking canceled"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamBookingID)

	req := dto.CancelBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + id + " canceled by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking canceled")
}

// OverrideBooking writes booking fields directly and records an audit entry. Cost is never recomputed.
// @Summary Override booking fields
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param request body dto.OverrideBookingRequest true "Override Booking Request"
// @Success 200 {object} response.Message "Booking overridden"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/override [patch]
// @Security BearerAuth
func (handler *Handler) OverrideBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OverrideBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamBookingID)

	req := dto.OverrideBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Override(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to override booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + id + " overridden by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking overridden")
}

// GetOverrides lists the override audit trail of a booking.
// @Summary Get booking override history
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[[]dto.OverrideResponse] "Override history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/overrides [get]
// @Security BearerAuth
func (handler *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverrides")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamBookingID)

	overrides, err := handler.service.Overrides(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking overrides")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, overrides)
}

// GetCost returns the frozen cost of an accepted booking, or a live quote for a pending one.
// @Summary Get booking cost
// @Description Sitters always quote against their own rate card. Administrators pass sitter_id for pending bookings.
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param sitter_id query string false "Sitter to quote for a pending booking"
// @Success 200 {object} response.Data[dto.CostResponse] "Cost breakdown"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/cost [get]
// @Security BearerAuth
func (handler *Handler) GetCost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCost")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamBookingID)
	sitterID := r.URL.Query().Get(constant.QueryParamSitterID)

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleSitter {
		sitterID, _ = ctx.Value(constant.ContextKeyUserID).(string)

		// a sitter can only price bookings it was offered
		if _, err := handler.service.Get(ctx, id); err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}
	}

	cost, err := handler.service.Cost(ctx, id, sitterID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking cost")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cost)
}
