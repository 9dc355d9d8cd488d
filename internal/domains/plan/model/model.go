package model

import (
	"time"

	"condotel/shared/model"
)

const (
	TableName  = "plans"
	EntityName = "plan"

	FieldID     = "id"
	FieldActive = "active"
)

const (
	PurchaseTableName  = "plan_purchases"
	PurchaseEntityName = "plan purchase"

	PurchaseFieldID        = "id"
	PurchaseFieldHostID    = "host_id"
	PurchaseFieldPlanID    = "plan_id"
	PurchaseFieldOrderCode = "order_code"
	PurchaseFieldStatus    = "status"
)

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusActive    = "active"
	PurchaseStatusInactive  = "inactive"
	PurchaseStatusCancelled = "cancelled"
)

// Plan is a host subscription tier. Price is in minor currency units.
type Plan struct {
	ID           int64  `db:"id" generated:"true"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Price        int64  `db:"price"`
	DurationDays int    `db:"duration_days"`
	MaxListings  int    `db:"max_listings"`
	Active       bool   `db:"active"`
	model.Metadata
}

// Purchase tracks one checkout of a plan by a host. A host has at most one
// active purchase; activating a new one retires the previous.
type Purchase struct {
	ID        int64      `db:"id" generated:"true"`
	PlanID    int64      `db:"plan_id"`
	HostID    int64      `db:"host_id"`
	OrderCode int64      `db:"order_code"`
	Amount    int64      `db:"amount"`
	Status    string     `db:"status"`
	StartsAt  *time.Time `db:"starts_at"`
	EndsAt    *time.Time `db:"ends_at"`
	model.Metadata
}
