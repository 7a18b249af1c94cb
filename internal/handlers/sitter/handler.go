package sitter

import (
	"net/http"
	"sitterhub/infras/otel"
	"sitterhub/internal/domains/sitter/model"
	"sitterhub/internal/domains/sitter/model/dto"
	"sitterhub/internal/domains/sitter/service"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/validator"
	"sitterhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Sitter
	otel    otel.Otel
}

func New(service service.Sitter, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sitters", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSitters)
		routerGroup.Get("/{sitterId}/rate-card", handler.GetRateCard)
		routerGroup.Patch("/{sitterId}/rate-card", handler.UpdateRateCard)
	})
}

// GetSitters lists active sitters.
// @Summary List sitters
// @Description List active sitters, optionally narrowed to a county.
// @Tags Sitter
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param county query string false "Filter by county"
// @Param name query string false "Case insensitive match on the sitter's name"
// @Success 200 {object} response.Data[dto.GetSittersResponse] "List of sitters"
// @Failure 500 {object} response.Error
// @Router /v1/sitters [get]
func (handler *Handler) GetSitters(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSitters")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldFullName, model.FieldBaseRateCents, model.FieldCounty)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	if county := r.URL.Query().Get(model.FieldCounty); county != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCounty,
			Operator: gDto.FilterOperatorEq,
			Value:    county,
			Table:    model.TableName,
		})
	}

	if name := r.URL.Query().Get(constant.QueryParamName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFullName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	sitters, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sitters")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, sitters)
}

// GetRateCard returns the current rate card of a sitter.
// @Summary Get a sitter rate card
// @Tags Sitter
// @Produce json
// @Param sitterId path string true "Sitter ID"
// @Success 200 {object} response.Data[dto.RateCardResponse] "Rate card"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sitters/{sitterId}/rate-card [get]
func (handler *Handler) GetRateCard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRateCard")
	defer scope.End()

	sitterID := chi.URLParam(r, constant.RequestParamSitterID)

	card, err := handler.service.GetRateCard(ctx, sitterID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to get rate card")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, card)
}

// UpdateRateCard changes pricing for future quotes. Accepted bookings keep their frozen cost.
// @Summary Update a sitter rate card
// @Tags Sitter
// @Accept json
// @Produce json
// @Param sitterId path string true "Sitter ID"
// @Param request body dto.UpdateRateCardRequest true "Update Rate Card Request"
// @Success 200 {object} response.Message "Rate card updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sitters/{sitterId}/rate-card [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRateCard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRateCard")
	defer scope.End()

	sitterID := chi.URLParam(r, constant.RequestParamSitterID)

	req := dto.UpdateRateCardRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRateCard(ctx, sitterID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to update rate card")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rate card updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Rate card updated successfully")
}
