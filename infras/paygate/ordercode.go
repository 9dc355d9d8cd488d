package paygate

import (
	"errors"
	"math/rand/v2"

	"condotel/shared/constant"
)

// Order codes are the provider-facing reference for a checkout. They pack the
// internal entity id with a random disambiguator so a re-created checkout for
// the same entity never collides with a stale one:
//
//	booking:       bookingID * 10^6 + random(0..999999)
//	plan purchase: hostID * 10^9 + planID * 10^6 + random(0..999999)
//
// Plan purchases therefore always sit at or above 10^9 while booking codes for
// this deployment's id range sit below it.

type TargetKind int

const (
	TargetBooking TargetKind = iota + 1
	TargetPlanPurchase
)

type Target struct {
	Kind      TargetKind
	BookingID int64
	HostID    int64
	PlanID    int64
}

var ErrInvalidOrderCode = errors.New("invalid order code")

func BookingOrderCode(bookingID int64) int64 {
	return bookingID*constant.OrderCodeMultiplier + rand.Int64N(constant.OrderCodeMultiplier)
}

func PlanOrderCode(hostID, planID int64) int64 {
	return hostID*constant.PlanOrderCodeFloor + planID*constant.OrderCodeMultiplier + rand.Int64N(constant.OrderCodeMultiplier)
}

// DecodeOrderCode derives the checkout target from the code's magnitude and
// structure. Callers still look the row up by the exact stored code, so a
// stale or fabricated reference resolves to "not found" rather than to the
// wrong entity.
func DecodeOrderCode(orderCode int64) (Target, error) {
	if orderCode < constant.OrderCodeMultiplier {
		return Target{}, ErrInvalidOrderCode
	}

	if orderCode >= constant.PlanOrderCodeFloor {
		return Target{
			Kind:   TargetPlanPurchase,
			HostID: orderCode / constant.PlanOrderCodeFloor,
			PlanID: (orderCode % constant.PlanOrderCodeFloor) / constant.OrderCodeMultiplier,
		}, nil
	}

	return Target{
		Kind:      TargetBooking,
		BookingID: orderCode / constant.OrderCodeMultiplier,
	}, nil
}
