package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"condotel/infras/otel"
	"condotel/infras/postgres"
	"condotel/internal/domains/voucher/model"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/logger"
	gRepo "condotel/shared/repository"
	"condotel/shared/timezone"
)

type Voucher interface {
	Insert(ctx context.Context, model model.Voucher) error
	InsertBulk(ctx context.Context, models []model.Voucher) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Voucher, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Voucher, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	ExpireBatch(ctx context.Context, before time.Time, limit int) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Voucher]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Voucher {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Voucher](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExpireBatch flips one batch of overdue vouchers to expired. Rows with a null
// status (legacy imports) are swept together with active ones.
func (repo *repositoryImpl) ExpireBatch(ctx context.Context, before time.Time, limit int) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".voucher.ExpireBatch")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET status = :expired, modified_at = :now, modified_by = :actor
		WHERE id IN (SELECT id FROM %s WHERE (status = :active OR status IS NULL) AND ends_at < :before LIMIT :batch)`,
		model.TableName, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"expired": model.StatusExpired,
		"active":  model.StatusActive,
		"before":  before,
		"batch":   limit,
		"now":     timezone.Now(),
		"actor":   constant.SystemActor,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to expire vouchers: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected, nil
}
