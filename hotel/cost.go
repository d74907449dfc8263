/*
cost.go - Booking cost computation

PURPOSE:
  Pure functions combining the room's nightly rate and the amenity
  selections into a booking total. No state, no I/O.

FORMULA:
  total = baseRoomRate(bedCount) * numberOfDays
        + sum(selection.Amenity.Cost) * numberOfDays

  The amenity cost is summed once per distinct selection and then multiplied
  by the day count. The selection COUNT does not scale the charge: billing
  treats a selection as a flat daily add-on regardless of how many units were
  requested. This matches the historical billing records this engine must
  reproduce; see the quirk test in cost_test.go before changing it.
*/
package hotel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TotalCost computes the full booking cost for a room, a set of selections,
// and a day count.
func TotalCost(room *Room, selections []Selection, numberOfDays int) (decimal.Decimal, error) {
	if room == nil {
		return decimal.Decimal{}, fmt.Errorf("room required: %w", ErrInvalidArgument)
	}
	if numberOfDays < 0 {
		return decimal.Decimal{}, fmt.Errorf("number of days %d: %w", numberOfDays, ErrInvalidArgument)
	}
	roomCost, err := RoomCost(room, numberOfDays)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return roomCost.Add(AmenityCost(selections, numberOfDays)), nil
}

// RoomCost is the room's share of the total: nightly rate times day count.
func RoomCost(room *Room, numberOfDays int) (decimal.Decimal, error) {
	rate, err := room.BaseRate()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rate.Mul(decimal.NewFromInt(int64(numberOfDays))), nil
}

// AmenityCost is the amenities' share: per-selection cost summed once, then
// multiplied by day count. Selection count is intentionally absent from the
// formula.
func AmenityCost(selections []Selection, numberOfDays int) decimal.Decimal {
	if len(selections) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, sel := range selections {
		sum = sum.Add(sel.Amenity.Cost)
	}
	return sum.Mul(decimal.NewFromInt(int64(numberOfDays)))
}
