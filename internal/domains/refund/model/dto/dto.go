package dto

import (
	"time"

	"condotel/internal/domains/refund/model"
	"condotel/shared"
	gDto "condotel/shared/dto"
)

type RequestRefundRequest struct {
	BookingID         int64  `json:"booking_id" validate:"required,gt=0"`
	BankCode          string `json:"bank_code" validate:"omitempty,max=32"`
	BankAccountNumber string `json:"bank_account_number" validate:"omitempty,max=64"`
	BankAccountHolder string `json:"bank_account_holder" validate:"omitempty,max=255"`
}

type ResubmitRefundRequest struct {
	BankCode          string `json:"bank_code" validate:"required,max=32"`
	BankAccountNumber string `json:"bank_account_number" validate:"required,max=64"`
	BankAccountHolder string `json:"bank_account_holder" validate:"required,max=255"`
}

type RejectRefundRequest struct {
	Note string `json:"note" validate:"required,max=500"`
}

type RefundResponse struct {
	ID                string  `json:"id"`
	BookingID         int64   `json:"booking_id"`
	CustomerID        int64   `json:"customer_id"`
	Amount            int64   `json:"amount"`
	BankCode          string  `json:"bank_code"`
	BankAccountNumber string  `json:"bank_account_number"`
	BankAccountHolder string  `json:"bank_account_holder"`
	Status            string  `json:"status"`
	Method            string  `json:"method"`
	ResubmitCount     int     `json:"resubmit_count"`
	GatewayRef        *string `json:"gateway_ref,omitempty"`
	RejectedNote      *string `json:"rejected_note,omitempty"`
	gDto.Metadata
}

func (r *RefundResponse) FromModel(mod model.RefundRequest) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.CustomerID = mod.CustomerID
	r.Amount = mod.Amount
	r.BankCode = mod.BankCode
	r.BankAccountNumber = mod.BankAccountNumber
	r.BankAccountHolder = mod.BankAccountHolder
	r.Status = mod.Status
	r.Method = mod.Method
	r.ResubmitCount = mod.ResubmitCount
	r.GatewayRef = mod.GatewayRef
	r.RejectedNote = mod.RejectedNote
	r.Metadata.FromModel(mod.Metadata)
}

type GetRefundsResponse struct {
	Refunds   []RefundResponse `json:"refunds"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRefundsResponse) FromModels(models []model.RefundRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Refunds = make([]RefundResponse, len(models))
	for i, mod := range models {
		r.Refunds[i].FromModel(mod)
	}
}

// RefundEvent is the message published to the refund events topic whenever a
// request changes state.
type RefundEvent struct {
	RefundID   string    `json:"refund_id"`
	BookingID  int64     `json:"booking_id"`
	Status     string    `json:"status"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
