package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sitterhub/infras/otel"
	"sitterhub/infras/postgres"
	"sitterhub/internal/domains/sitter/model"
	"sitterhub/shared/constant"
	gDto "sitterhub/shared/dto"
	gRepo "sitterhub/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Sitter interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Sitter, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Sitter, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetAddons(ctx context.Context, sitterID string) ([]model.Addon, error)
	GetDiscountTiers(ctx context.Context, sitterID string) ([]model.DiscountTier, error)
	UpdateRateCard(ctx context.Context, sitterID string, fields map[string]any, tiers []model.DiscountTier) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Sitter]
	addons gRepo.Repository[model.Addon]
	tiers  gRepo.Repository[model.DiscountTier]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Sitter {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Sitter](model.EntityName, model.TableName, model.FieldID, db, otel),
		addons:     gRepo.NewRepository[model.Addon](model.AddonEntityName, model.AddonTableName, model.FieldID, db, otel),
		tiers:      gRepo.NewRepository[model.DiscountTier](model.TierEntityName, model.TierTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func bySitter(table, sitterID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAddonSitterID, Operator: gDto.FilterOperatorEq, Value: sitterID, Table: table},
		},
	}
}

func (r *repositoryImpl) GetAddons(ctx context.Context, sitterID string) ([]model.Addon, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".sitter.GetAddons")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldAddonPosition, SortDir: gDto.SortDirAsc}

	return r.addons.GetAll(ctx, params, bySitter(model.AddonTableName, sitterID)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetDiscountTiers(ctx context.Context, sitterID string) ([]model.DiscountTier, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".sitter.GetDiscountTiers")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldTierMinDays, SortDir: gDto.SortDirAsc}

	return r.tiers.GetAll(ctx, params, bySitter(model.TierTableName, sitterID)) //nolint:wrapcheck
}

// UpdateRateCard writes the sitter columns and, when tiers is non-nil, replaces the discount tiers.
func (r *repositoryImpl) UpdateRateCard(ctx context.Context, sitterID string, fields map[string]any, tiers []model.DiscountTier) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".sitter.UpdateRateCard")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		filter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: sitterID, Table: model.TableName},
			},
		}

		if err := r.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update sitter: %w", err)
		}

		if tiers == nil {
			return nil
		}

		if err := r.tiers.DeleteTx(ctx, tx, bySitter(model.TierTableName, sitterID)); err != nil {
			return fmt.Errorf("failed to clear discount tiers: %w", err)
		}

		if len(tiers) == 0 {
			return nil
		}

		if err := r.tiers.InsertBulkTx(ctx, tx, tiers); err != nil {
			return fmt.Errorf("failed to insert discount tiers: %w", err)
		}

		return nil
	})
}
