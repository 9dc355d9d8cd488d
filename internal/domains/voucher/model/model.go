package model

import (
	"time"

	"condotel/shared/model"
)

const (
	TableName  = "vouchers"
	EntityName = "voucher"

	FieldID         = "id"
	FieldCode       = "code"
	FieldCondotelID = "condotel_id"
	FieldHostID     = "host_id"
	FieldUserID     = "user_id"
	FieldStatus     = "status"
	FieldEndsAt     = "ends_at"
	FieldUsedCount  = "used_count"
)

const (
	StatusActive   = "active"
	StatusUsed     = "used"
	StatusExpired  = "expired"
	StatusInactive = "inactive"
)

// Voucher is a discount instrument scoped to exactly one condotel, and
// optionally to one user. A voucher with a user id is redeemable only by that
// user; one without is public. Expired vouchers are flipped to expired by the
// sweeper, never deleted.
type Voucher struct {
	ID              string    `db:"id"`
	Code            string    `db:"code"`
	CondotelID      int64     `db:"condotel_id"`
	HostID          int64     `db:"host_id"`
	UserID          *int64    `db:"user_id"`
	BookingID       *int64    `db:"booking_id"`
	DiscountPercent int       `db:"discount_percent"`
	DiscountAmount  int64     `db:"discount_amount"`
	StartsAt        time.Time `db:"starts_at"`
	EndsAt          time.Time `db:"ends_at"`
	UsageLimit      int       `db:"usage_limit"`
	UsedCount       int       `db:"used_count"`
	Status          string    `db:"status"`
	model.Metadata
}
