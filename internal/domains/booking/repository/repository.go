package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"condotel/infras/otel"
	"condotel/infras/postgres"
	"condotel/internal/domains/booking/model"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/logger"
	gRepo "condotel/shared/repository"
)

type Booking interface {
	InsertReturningID(ctx context.Context, mod model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertReturningID inserts a booking and returns the serial id assigned by
// the database. The id is needed up front because the checkout order code
// embeds it.
func (repo *repositoryImpl) InsertReturningID(ctx context.Context, mod model.Booking) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertReturningID")
	defer scope.End()

	placeholders := []string{}
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		model.TableName, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "), model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	bound, args, err := repo.db.Write.BindNamed(query, mod)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to bind insert query (%s): %w", model.EntityName, err)
	}

	var id int64
	if err := repo.db.Write.QueryRowxContext(ctx, bound, args...).Scan(&id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return id, nil
}
