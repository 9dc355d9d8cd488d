package model

import (
	"condotel/shared/model"
)

const (
	TableName  = "condotels"
	EntityName = "condotel"

	FieldID     = "id"
	FieldHostID = "host_id"
	FieldActive = "active"
)

type Condotel struct {
	ID            int64  `db:"id" generated:"true"`
	HostID        int64  `db:"host_id"`
	Name          string `db:"name"`
	City          string `db:"city"`
	PricePerNight int64  `db:"price_per_night"`
	Active        bool   `db:"active"`
	model.Metadata
}
