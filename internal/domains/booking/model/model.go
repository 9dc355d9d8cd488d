package model

import (
	"time"

	"condotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldCondotelID   = "condotel_id"
	FieldCustomerID   = "customer_id"
	FieldHostID       = "host_id"
	FieldOrderCode    = "order_code"
	FieldStatus       = "status"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldCheckInToken = "check_in_token"
	FieldCreatedAt    = "created_at"
)

// Status advances along pending -> confirmed -> in_stay -> completed, with
// cancelled reachable from pending and confirmed only. Completed and
// cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusInStay    = "in_stay"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         int64     `db:"id" generated:"true"`
	CondotelID int64     `db:"condotel_id"`
	CustomerID int64     `db:"customer_id"`
	HostID     int64     `db:"host_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`

	// Guest of record, when the stay is booked on someone else's behalf.
	GuestName  *string `db:"guest_name"`
	GuestPhone *string `db:"guest_phone"`

	TotalPrice int64  `db:"total_price"`
	OrderCode  int64  `db:"order_code"`
	Status     string `db:"status"`

	CheckInToken     *string    `db:"check_in_token"`
	TokenGeneratedAt *time.Time `db:"token_generated_at"`
	TokenUsedAt      *time.Time `db:"token_used_at"`

	PromotionID *int64  `db:"promotion_id"`
	VoucherID   *string `db:"voucher_id"`

	IsPaidToHost       bool       `db:"is_paid_to_host"`
	PaidToHostAt       *time.Time `db:"paid_to_host_at"`
	PayoutRejectedNote *string    `db:"payout_rejected_note"`

	model.Metadata
}

// Terminal reports whether no further status transition is legal.
func (b Booking) Terminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}
