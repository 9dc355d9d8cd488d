package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"condotel/infras/otel"
	"condotel/infras/postgres"
	"condotel/internal/domains/promotion/model"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/logger"
	gRepo "condotel/shared/repository"
	"condotel/shared/timezone"
)

type Promotion interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promotion, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promotion, error)
	ExpireBatch(ctx context.Context, before time.Time, limit int) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Promotion]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Promotion {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Promotion](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExpireBatch flips one batch of overdue active promotions to inactive and
// reports how many rows it claimed. The status guard in the subquery keeps the
// write idempotent under concurrent sweeps.
func (repo *repositoryImpl) ExpireBatch(ctx context.Context, before time.Time, limit int) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promotion.ExpireBatch")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET status = :inactive, modified_at = :now, modified_by = :actor
		WHERE id IN (SELECT id FROM %s WHERE status = :active AND end_date < :before LIMIT :batch)`,
		model.TableName, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"inactive": model.StatusInactive,
		"active":   model.StatusActive,
		"before":   before,
		"batch":    limit,
		"now":      timezone.Now(),
		"actor":    constant.SystemActor,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to expire promotions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected, nil
}
