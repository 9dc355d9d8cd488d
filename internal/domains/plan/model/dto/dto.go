package dto

import (
	"condotel/internal/domains/plan/model"
	"condotel/shared"
	"condotel/shared/constant"
	gDto "condotel/shared/dto"
	"condotel/shared/timezone"
)

type PurchasePlanRequest struct {
	PlanID int64 `json:"plan_id" validate:"required,gt=0"`
}

type PurchasePlanResponse struct {
	PurchaseID  int64  `json:"purchase_id"`
	OrderCode   int64  `json:"order_code"`
	Amount      int64  `json:"amount"`
	CheckoutURL string `json:"checkout_url"`
}

type PlanResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	DurationDays int    `json:"duration_days"`
	MaxListings  int    `json:"max_listings"`
	Active       bool   `json:"active"`
}

func (r *PlanResponse) FromModel(mod model.Plan) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Price = mod.Price
	r.DurationDays = mod.DurationDays
	r.MaxListings = mod.MaxListings
	r.Active = mod.Active
}

type GetPlansResponse struct {
	Plans     []PlanResponse `json:"plans"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetPlansResponse) FromModels(models []model.Plan, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Plans = make([]PlanResponse, len(models))
	for i, mod := range models {
		r.Plans[i].FromModel(mod)
	}
}

type PurchaseResponse struct {
	ID        int64  `json:"id"`
	PlanID    int64  `json:"plan_id"`
	HostID    int64  `json:"host_id"`
	OrderCode int64  `json:"order_code"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	StartsAt  string `json:"starts_at,omitempty"`
	EndsAt    string `json:"ends_at,omitempty"`
	gDto.Metadata
}

func (r *PurchaseResponse) FromModel(mod model.Purchase) {
	r.ID = mod.ID
	r.PlanID = mod.PlanID
	r.HostID = mod.HostID
	r.OrderCode = mod.OrderCode
	r.Amount = mod.Amount
	r.Status = mod.Status

	if mod.StartsAt != nil {
		r.StartsAt = timezone.Format(*mod.StartsAt, constant.DateFormat)
	}

	if mod.EndsAt != nil {
		r.EndsAt = timezone.Format(*mod.EndsAt, constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}
