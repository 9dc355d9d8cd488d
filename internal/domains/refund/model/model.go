package model

import (
	"condotel/shared/model"
)

const (
	TableName  = "refund_requests"
	EntityName = "refund request"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldCustomerID    = "customer_id"
	FieldStatus        = "status"
	FieldResubmitCount = "resubmit_count"
)

// A refund request settles either through the gateway (refunded) or by an
// admin paying out manually (completed). Rejected requests may be resubmitted
// once; a second rejection is terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRefunded  = "refunded"
	StatusRejected  = "rejected"
)

const (
	MethodAuto   = "auto"
	MethodManual = "manual"

	MaxResubmissions = 1
)

type RefundRequest struct {
	ID         string `db:"id"`
	BookingID  int64  `db:"booking_id"`
	CustomerID int64  `db:"customer_id"`
	Amount     int64  `db:"amount"`

	BankCode          string `db:"bank_code"`
	BankAccountNumber string `db:"bank_account_number"`
	BankAccountHolder string `db:"bank_account_holder"`

	Status        string  `db:"status"`
	Method        string  `db:"method"`
	ResubmitCount int     `db:"resubmit_count"`
	GatewayRef    *string `db:"gateway_ref"`
	RejectedNote  *string `db:"rejected_note"`

	model.Metadata
}

// Terminal reports whether the request can no longer change state. A rejected
// request still under the resubmission cap is not terminal.
func (r RefundRequest) Terminal() bool {
	if r.Status == StatusCompleted || r.Status == StatusRefunded {
		return true
	}

	return r.Status == StatusRejected && r.ResubmitCount >= MaxResubmissions
}
