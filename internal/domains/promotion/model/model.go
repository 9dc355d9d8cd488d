package model

import (
	"time"

	"condotel/shared/model"
)

const (
	TableName  = "promotions"
	EntityName = "promotion"

	FieldID         = "id"
	FieldCondotelID = "condotel_id"
	FieldStatus     = "status"
	FieldEndDate    = "end_date"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Promotion is a time-bounded discount on one condotel. An active promotion
// implies its end date has not passed; the daily sweeper enforces that by
// flipping overdue rows to inactive.
type Promotion struct {
	ID              int64     `db:"id" generated:"true"`
	CondotelID      int64     `db:"condotel_id"`
	Name            string    `db:"name"`
	DiscountPercent int       `db:"discount_percent"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	Status          string    `db:"status"`
	model.Metadata
}
