package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sitterhub/config"
	"sitterhub/infras/otel"
	"sitterhub/infras/s3"
	bookingModel "sitterhub/internal/domains/booking/model"
	bookingRepo "sitterhub/internal/domains/booking/repository"
	"sitterhub/internal/domains/waiver/model"
	"sitterhub/internal/domains/waiver/model/dto"
	"sitterhub/internal/domains/waiver/repository"
	"sitterhub/shared"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
	"sitterhub/shared/validator"
	"time"

	"github.com/rs/zerolog/log"
)

type Waiver interface {
	Upload(ctx context.Context, bookingID string, req dto.UploadWaiverRequest) (dto.WaiverResponse, error)
	GetAll(ctx context.Context, bookingID string) (dto.GetWaiversResponse, error)
}

type serviceImpl struct {
	repo     repository.Waiver
	bookings bookingRepo.Booking
	storage  s3.Storage
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Waiver, bookings bookingRepo.Booking, storage s3.Storage, cfg *config.Config, otel otel.Otel) Waiver {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		storage:  storage,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) ensureBooking(ctx context.Context, bookingID string) error {
	exist, err := s.bookings.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}

// Upload stores the document first and removes it again when the row cannot be written.
func (s *serviceImpl) Upload(ctx context.Context, bookingID string, req dto.UploadWaiverRequest) (res dto.WaiverResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waiver.Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Document == nil {
		return res, failure.BadRequestFromString("document is required") // nolint:wrapcheck
	}

	if err = validator.FileSize(req.Document, s.cfg.Waiver.MaxSizeMB); err != nil {
		return res, err
	}

	if err = s.ensureBooking(ctx, bookingID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	waiver := req.ToModel(s.cfg.Waiver.Directory, bookingID, user)

	if err = s.storage.Upload(ctx, waiver.ObjectKey, waiver.ContentType, req.DocumentFile, waiver.SizeBytes); err != nil {
		return res, fmt.Errorf("failed to store waiver document: %w", err)
	}

	if err = s.repo.Insert(ctx, waiver); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to record waiver")

		if delErr := s.storage.Delete(context.WithoutCancel(ctx), waiver.ObjectKey); delErr != nil {
			log.Error().Err(delErr).Str("key", waiver.ObjectKey).Msg("failed to remove orphaned waiver document")
		}

		return res, fmt.Errorf("failed to record waiver: %w", err)
	}

	log.Info().Str("booking_id", bookingID).Str("waiver_id", waiver.ID).Msg("waiver uploaded")

	res.FromModel(waiver)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, bookingID string) (res dto.GetWaiversResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".waiver.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureBooking(ctx, bookingID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(bookingID, model.FieldBookingID, model.TableName)
	params := gDto.QueryParams{SortBy: model.FieldSignedAt, SortDir: gDto.SortDirDesc}

	waivers, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get waivers")

		return res, fmt.Errorf("failed to get waivers: %w", err)
	}

	res.FromModels(waivers)

	ttl := time.Duration(s.cfg.Waiver.PresignTTLMinutes) * time.Minute

	for i, waiver := range waivers {
		url, err := s.storage.PresignGet(ctx, waiver.ObjectKey, ttl)
		if err != nil {
			log.Warn().Err(err).Str("waiver_id", waiver.ID).Msg("failed to presign waiver document")

			continue
		}

		res.Waivers[i].URL = url
	}

	return res, nil
}
