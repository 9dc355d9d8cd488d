package dto

import (
	"time"

	"condotel/internal/domains/booking/model"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/timezone"
)

type CreateBookingRequest struct {
	CondotelID  int64   `json:"condotel_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required,dateonly"`
	EndDate     string  `json:"end_date" validate:"required,dateonly"`
	GuestName   *string `json:"guest_name" validate:"omitempty,max=255"`
	GuestPhone  *string `json:"guest_phone" validate:"omitempty,max=32"`
	PromotionID *int64  `json:"promotion_id" validate:"omitempty,gt=0"`
	VoucherCode *string `json:"voucher_code" validate:"omitempty,max=32"`
}

type CreateBookingResponse struct {
	BookingID   int64  `json:"booking_id"`
	OrderCode   int64  `json:"order_code"`
	TotalPrice  int64  `json:"total_price"`
	CheckoutURL string `json:"checkout_url"`
}

type CheckInRequest struct {
	Token     string `json:"token" validate:"required"`
	GuestName string `json:"guest_name" validate:"required,max=255"`
}

type BookingResponse struct {
	ID           int64   `json:"id"`
	CondotelID   int64   `json:"condotel_id"`
	CustomerID   int64   `json:"customer_id"`
	HostID       int64   `json:"host_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	GuestName    *string `json:"guest_name,omitempty"`
	GuestPhone   *string `json:"guest_phone,omitempty"`
	TotalPrice   int64   `json:"total_price"`
	OrderCode    int64   `json:"order_code"`
	Status       string  `json:"status"`
	CheckInToken *string `json:"check_in_token,omitempty"`
	PromotionID  *int64  `json:"promotion_id,omitempty"`
	VoucherID    *string `json:"voucher_id,omitempty"`
	IsPaidToHost bool    `json:"is_paid_to_host"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.CondotelID = mod.CondotelID
	r.CustomerID = mod.CustomerID
	r.HostID = mod.HostID
	r.StartDate = timezone.Format(mod.StartDate, constant.DateOnlyFormat)
	r.EndDate = timezone.Format(mod.EndDate, constant.DateOnlyFormat)
	r.GuestName = mod.GuestName
	r.GuestPhone = mod.GuestPhone
	r.TotalPrice = mod.TotalPrice
	r.OrderCode = mod.OrderCode
	r.Status = mod.Status
	r.CheckInToken = mod.CheckInToken
	r.PromotionID = mod.PromotionID
	r.VoucherID = mod.VoucherID
	r.IsPaidToHost = mod.IsPaidToHost
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the message published to the booking events topic on every
// lifecycle transition.
type BookingEvent struct {
	BookingID  int64     `json:"booking_id"`
	CondotelID int64     `json:"condotel_id"`
	CustomerID int64     `json:"customer_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
