package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"condotel/infras/otel"
	"condotel/infras/postgres"
	"condotel/internal/domains/refund/model"
	gDto "condotel/shared/dto"
	gRepo "condotel/shared/repository"
)

type Refund interface {
	Insert(ctx context.Context, model model.RefundRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RefundRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RefundRequest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RefundRequest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Refund {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RefundRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
