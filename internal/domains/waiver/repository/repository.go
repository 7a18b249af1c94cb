package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sitterhub/infras/otel"
	"sitterhub/infras/postgres"
	"sitterhub/internal/domains/waiver/model"
	gDto "sitterhub/shared/dto"
	gRepo "sitterhub/shared/repository"
)

type Waiver interface {
	Insert(ctx context.Context, model model.Waiver) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Waiver, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Waiver]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Waiver {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Waiver](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
