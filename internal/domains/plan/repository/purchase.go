package repository

//go:generate go run go.uber.org/mock/mockgen -source=./purchase.go -destination=../mocks/purchase_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"condotel/infras/otel"
	"condotel/infras/postgres"
	"condotel/internal/domains/plan/model"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/logger"
	gRepo "condotel/shared/repository"
	"condotel/shared/timezone"
)

type Purchase interface {
	InsertReturningID(ctx context.Context, mod model.Purchase) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Purchase, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Purchase, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	DeactivateOthers(ctx context.Context, hostID, keepID int64) (int64, error)
}

type purchaseRepositoryImpl struct {
	gRepo.Repository[model.Purchase]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPurchase(db *postgres.Connection, otel otel.Otel) Purchase {
	return &purchaseRepositoryImpl{
		Repository: gRepo.NewRepository[model.Purchase](model.PurchaseEntityName, model.PurchaseTableName, model.PurchaseFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertReturningID inserts a purchase and returns the serial id assigned by
// the database.
func (repo *purchaseRepositoryImpl) InsertReturningID(ctx context.Context, mod model.Purchase) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".plan purchase.InsertReturningID")
	defer scope.End()

	placeholders := []string{}
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		model.PurchaseTableName, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "), model.PurchaseFieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	bound, args, err := repo.db.Write.BindNamed(query, mod)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to bind insert query (%s): %w", model.PurchaseEntityName, err)
	}

	var id int64
	if err := repo.db.Write.QueryRowxContext(ctx, bound, args...).Scan(&id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.PurchaseEntityName, err)
	}

	return id, nil
}

// DeactivateOthers retires every active purchase of the host except keepID.
// Called right after an activation so a host never holds two active plans.
func (repo *purchaseRepositoryImpl) DeactivateOthers(ctx context.Context, hostID, keepID int64) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".plan purchase.DeactivateOthers")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET status = :inactive, modified_at = :now, modified_by = :actor
		WHERE host_id = :host_id AND status = :active AND id <> :keep_id`, model.PurchaseTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"inactive": model.PurchaseStatusInactive,
		"active":   model.PurchaseStatusActive,
		"host_id":  hostID,
		"keep_id":  keepID,
		"now":      timezone.Now(),
		"actor":    constant.SystemActor,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to deactivate purchases: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", model.PurchaseEntityName, err)
	}

	return affected, nil
}
