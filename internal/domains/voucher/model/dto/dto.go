package dto

import (
	"condotel/internal/domains/voucher/model"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/timezone"
)

type VoucherResponse struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	CondotelID      int64  `json:"condotel_id"`
	DiscountPercent int    `json:"discount_percent"`
	DiscountAmount  int64  `json:"discount_amount"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	UsageLimit      int    `json:"usage_limit"`
	UsedCount       int    `json:"used_count"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *VoucherResponse) FromModel(mod model.Voucher) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.CondotelID = mod.CondotelID
	r.DiscountPercent = mod.DiscountPercent
	r.DiscountAmount = mod.DiscountAmount
	r.StartsAt = timezone.Format(mod.StartsAt, constant.DateFormat)
	r.EndsAt = timezone.Format(mod.EndsAt, constant.DateFormat)
	r.UsageLimit = mod.UsageLimit
	r.UsedCount = mod.UsedCount
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVouchersResponse) FromModels(models []model.Voucher, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vouchers = make([]VoucherResponse, len(models))
	for i, mod := range models {
		r.Vouchers[i].FromModel(mod)
	}
}
