package waiver

import (
	"net/http"
	"sitterhub/infras/otel"
	"sitterhub/internal/domains/waiver/model/dto"
	"sitterhub/internal/domains/waiver/service"
	"sitterhub/shared/constant"
	"sitterhub/shared/failure"
	"sitterhub/shared/validator"
	"sitterhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Waiver
	otel    otel.Otel
}

func New(service service.Waiver, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings/{bookingId}/waivers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadWaiver)
		routerGroup.Get("/", handler.GetWaivers)
	})
}

// UploadWaiver stores a signed waiver PDF for a booking.
// @Summary Upload a signed waiver
// @Tags Waiver
// @Accept multipart/form-data
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param signer_name formData string true "Name of the signer"
// @Param file formData file true "Signed waiver PDF"
// @Success 201 {object} response.Data[dto.WaiverResponse] "Waiver uploaded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/waivers [post]
// @Security BearerAuth
func (handler *Handler) UploadWaiver(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadWaiver")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadWaiverRequest{
		SignerName:   r.FormValue(constant.FormSignerName),
		Document:     fileHeader,
		DocumentFile: file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookingID := chi.URLParam(r, constant.RequestParamBookingID)

	res, err := handler.service.Upload(ctx, bookingID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to upload waiver")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Waiver " + res.ID + " uploaded for booking " + bookingID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetWaivers lists the waivers of a booking with short lived download links.
// @Summary List booking waivers
// @Tags Waiver
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetWaiversResponse] "Waivers"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{bookingId}/waivers [get]
// @Security BearerAuth
func (handler *Handler) GetWaivers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWaivers")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamBookingID)

	waivers, err := handler.service.GetAll(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get waivers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, waivers)
}
