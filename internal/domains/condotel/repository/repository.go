package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"condotel/infras/otel"
	"condotel/infras/postgres"
	"condotel/internal/domains/condotel/model"
	gDto "condotel/shared/dto"
	gRepo "condotel/shared/repository"
)

type Condotel interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Condotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Condotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Condotel]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Condotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Condotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
