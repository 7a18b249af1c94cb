package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sitterhub/config"
	"sitterhub/infras/otel"
	"sitterhub/internal/domains/sitter/model"
	"sitterhub/internal/domains/sitter/model/dto"
	"sitterhub/internal/domains/sitter/repository"
	"sitterhub/internal/pricing"
	"sitterhub/shared"
	"sitterhub/shared/cache"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllSitter = "sitter:gets"
	cacheCountSitter  = "sitter:count"
	cacheGetRateCard  = "sitter:rate-card"
)

type Sitter interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSittersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	// GetRateCard is the cached read used for display and quotes.
	GetRateCard(ctx context.Context, sitterID string) (dto.RateCardResponse, error)
	// RateCard always reads the database. Acceptance freezes its result.
	RateCard(ctx context.Context, sitterID string) (pricing.RateCard, error)
	UpdateRateCard(ctx context.Context, sitterID string, req dto.UpdateRateCardRequest) error
	ActiveCount(ctx context.Context, ids []string) (int, error)
}

type serviceImpl struct {
	repo  repository.Sitter
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Sitter, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Sitter {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSittersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitter.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSitter, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for sitters")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sitters")

		return res, fmt.Errorf("failed to get sitters: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save sitters to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitter.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSitter, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sitters")

		return res, fmt.Errorf("failed to count sitters: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save sitter count to cache")
	}

	return res, nil
}

func (s *serviceImpl) GetRateCard(ctx context.Context, sitterID string) (res dto.RateCardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitter.GetRateCard")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRateCard, sitterID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	card, err := s.RateCard(ctx, sitterID)
	if err != nil {
		return res, err
	}

	res = dto.RateCardResponse{SitterID: sitterID, RateCard: card}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save rate card to cache")
	}

	return res, nil
}

func (s *serviceImpl) RateCard(ctx context.Context, sitterID string) (res pricing.RateCard, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitter.RateCard")
	defer scope.End()
	defer scope.TraceIfError(err)

	sitter, err := s.repo.Get(ctx, shared.FilterByID(sitterID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to get sitter")

		return res, fmt.Errorf("failed to get sitter: %w", err)
	}

	if sitter.ID == constant.Empty {
		return res, failure.NotFound("sitter not found") // nolint:wrapcheck
	}

	addons, err := s.repo.GetAddons(ctx, sitterID)
	if err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to get sitter add-ons")

		return res, fmt.Errorf("failed to get sitter add-ons: %w", err)
	}

	tiers, err := s.repo.GetDiscountTiers(ctx, sitterID)
	if err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to get sitter discount tiers")

		return res, fmt.Errorf("failed to get sitter discount tiers: %w", err)
	}

	return model.RateCard(sitter, addons, tiers), nil
}

func (s *serviceImpl) UpdateRateCard(ctx context.Context, sitterID string, req dto.UpdateRateCardRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitter.UpdateRateCard")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(sitterID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if sitter exists")

		return fmt.Errorf("failed to check if sitter exists: %w", err)
	}

	if !exist {
		return failure.NotFound("sitter not found") // nolint:wrapcheck
	}

	if err = s.repo.UpdateRateCard(ctx, sitterID, shared.TransformFields(req, user), req.ToTierModels(sitterID)); err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to update rate card")

		return fmt.Errorf("failed to update rate card: %w", err)
	}

	log.Info().Str("sitter_id", sitterID).Str("admin_id", user).Msg("rate card updated")

	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRateCard, sitterID)); err != nil {
		log.Error().Err(err).Str("sitter_id", sitterID).Msg("failed to delete rate card from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllSitter)

	return nil
}

func (s *serviceImpl) ActiveCount(ctx context.Context, ids []string) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitter.ActiveCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(ids) == 0 {
		return 0, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorIn, Value: ids, Table: model.TableName},
			gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
		},
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count active sitters")

		return 0, fmt.Errorf("failed to count active sitters: %w", err)
	}

	return res, nil
}
