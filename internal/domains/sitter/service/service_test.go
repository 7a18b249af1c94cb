package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sitterhub/config"
	"sitterhub/infras/otel/mocks"
	sitterMocks "sitterhub/internal/domains/sitter/mocks"
	"sitterhub/internal/domains/sitter/model"
	"sitterhub/internal/domains/sitter/model/dto"
	"sitterhub/internal/domains/sitter/service"
	"sitterhub/internal/pricing"
	cacheMocks "sitterhub/shared/cache/mocks"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	"sitterhub/shared/failure"
)

type fixture struct {
	repo  *sitterMocks.MockSitter
	cache *cacheMocks.MockRedisCache
	svc   service.Sitter
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		repo:  sitterMocks.NewMockSitter(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestSitterService_RateCard(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Sitter{ID: "st-1", BaseRateCents: 5000}, nil)
	f.repo.EXPECT().GetAddons(gomock.Any(), "st-1").Return([]model.Addon{{ID: "walk", SitterID: "st-1", Name: "Extra walk", PriceCents: 1000}}, nil)
	f.repo.EXPECT().GetDiscountTiers(gomock.Any(), "st-1").Return([]model.DiscountTier{{MinDays: 5, Percentage: 10}}, nil)

	card, err := f.svc.RateCard(context.Background(), "st-1")

	require.NoError(t, err)
	assert.Equal(t, pricing.RateCard{
		BaseRateCents: 5000,
		Addons:        []pricing.Addon{{ID: "walk", Name: "Extra walk", PriceCents: 1000}},
		DiscountTiers: []pricing.DiscountTier{{MinDays: 5, Percentage: 10}},
	}, card)
}

func TestSitterService_RateCard_NotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Sitter{}, nil)

	_, err := f.svc.RateCard(context.Background(), "missing")

	assert.True(t, failure.IsNotFound(err))
}

func TestSitterService_GetRateCard_CacheHit(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "sitter:rate-card:st-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, _ := value.(*dto.RateCardResponse)
			res.SitterID = "st-1"
			res.BaseRateCents = 4200

			return nil
		})

	res, err := f.svc.GetRateCard(context.Background(), "st-1")

	require.NoError(t, err)
	assert.Equal(t, int64(4200), res.BaseRateCents)
}

func TestSitterService_GetRateCard_CacheMiss(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Sitter{ID: "st-1", BaseRateCents: 5000}, nil)
	f.repo.EXPECT().GetAddons(gomock.Any(), "st-1").Return(nil, nil)
	f.repo.EXPECT().GetDiscountTiers(gomock.Any(), "st-1").Return(nil, nil)

	res, err := f.svc.GetRateCard(context.Background(), "st-1")

	require.NoError(t, err)
	assert.Equal(t, "st-1", res.SitterID)
	assert.Equal(t, int64(5000), res.BaseRateCents)
}

func TestSitterService_UpdateRateCard(t *testing.T) {
	rate := int64(9000)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	tests := []struct {
		name     string
		req      dto.UpdateRateCardRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:     "empty request",
			req:      dto.UpdateRateCardRequest{},
			setup:    func(fixture) {},
			wantCode: 400,
		},
		{
			name: "sitter missing",
			req:  dto.UpdateRateCardRequest{BaseRateCents: &rate},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
		{
			name: "base rate only keeps tiers",
			req:  dto.UpdateRateCardRequest{BaseRateCents: &rate},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().UpdateRateCard(gomock.Any(), "st-1", gomock.Any(), gomock.Nil()).
					DoAndReturn(func(_ context.Context, _ string, fields map[string]any, _ []model.DiscountTier) error {
						assert.Equal(t, int64(9000), fields[model.FieldBaseRateCents])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "tiers replaced",
			req:  dto.UpdateRateCardRequest{DiscountTiers: &[]dto.DiscountTierRequest{{MinDays: 7, Percentage: 15}}},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().UpdateRateCard(gomock.Any(), "st-1", gomock.Any(), gomock.Len(1)).Return(nil)
			},
		},
		{
			name: "repository failure",
			req:  dto.UpdateRateCardRequest{BaseRateCents: &rate},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().UpdateRateCard(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.UpdateRateCard(ctx, "st-1", tt.req)
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestSitterService_ActiveCount(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(sitters.id IN (:id_0, :id_1)  AND sitters.active = :active)", where)
			assert.Equal(t, true, args["active"])

			return 2, nil
		})

	count, err := f.svc.ActiveCount(context.Background(), []string{"st-1", "st-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = f.svc.ActiveCount(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}
