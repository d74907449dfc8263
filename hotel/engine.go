/*
engine.go - The reservation transaction

PURPOSE:
  Reserve is the one mutating path that turns a request into a Booking.
  It validates the request, enforces the floor's amenity restrictions and
  the selection capacity bound, checks availability, computes cost, and
  commits the calendar span - atomically per room.

TRANSACTION SHAPE:
  Everything up to the commit is read-only. The availability re-check and
  the calendar mutation happen together under the room's lock
  (Room.reserveSpan), so no other Reserve against the same room can act
  between check and commit. Reservations against different rooms take
  different locks and proceed in parallel.

FAILURE SEMANTICS:
  Every error return means "no side effect occurred": no calendar day was
  cleared and no booking was registered. There is nothing to retry
  internally - the caller picks a different room or date.

SEE ALSO:
  - calendar.go: the free-day set being committed
  - cost.go: the total passed into the Booking
  - errors.go: the failure taxonomy
*/
package hotel

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reserve validates a room/date-range/selection request and commits it,
// returning the registered Booking.
//
// Restriction and capacity failures are reported before availability is
// consulted; an unavailable room is reported before any mutation. On
// success the calendar span [start, start+numberOfDays] (inclusive) is
// removed from the room's free-day set and the booking is registered under
// a freshly generated id.
func (d *Directory) Reserve(roomNumber int, start Date, numberOfDays int, selections []Selection, user *User) (*Booking, error) {
	if err := validateSpan(start, numberOfDays); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user required: %w", ErrInvalidArgument)
	}

	room, err := d.Room(roomNumber)
	if err != nil {
		return nil, err
	}

	// Restriction check: any selection naming a restricted amenity rejects
	// the whole request.
	for _, sel := range selections {
		if room.floor.Restricts(sel.Amenity.Name) {
			return nil, &RestrictionError{
				Amenity:     sel.Amenity.Name,
				RoomNumber:  room.Number,
				FloorNumber: room.floor.Number,
			}
		}
	}

	// Capacity bound. NewSelection already enforced this; re-checking here
	// keeps a hand-built Selection literal from slipping past the invariant.
	for _, sel := range selections {
		if sel.Count < 0 || sel.Count > sel.Amenity.Limit {
			return nil, &CapacityError{Amenity: sel.Amenity.Name, Count: sel.Count, Limit: sel.Amenity.Limit}
		}
	}

	total, err := TotalCost(room, selections, numberOfDays)
	if err != nil {
		return nil, err
	}

	// Critical section: availability re-check + calendar commit, atomic per
	// room.
	if err := room.reserveSpan(start, numberOfDays); err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:           uuid.New(),
		StartDate:    start,
		NumberOfDays: numberOfDays,
		Room:         room,
		User:         user,
		Selections:   append([]Selection(nil), selections...),
		TotalCost:    total,
	}
	d.registerBooking(booking)
	return booking, nil
}

// RestoreBooking replays a previously committed booking into this directory,
// keeping its id and total. Used by persistence loaders rebuilding calendar
// state; the past-date check is skipped because restored bookings are
// historical by nature. The room must already be registered.
func (d *Directory) RestoreBooking(id uuid.UUID, roomNumber int, start Date, numberOfDays int, selections []Selection, user *User, total decimal.Decimal) (*Booking, error) {
	if start.IsZero() || numberOfDays < 0 {
		return nil, fmt.Errorf("restore span %s+%d: %w", start, numberOfDays, ErrInvalidArgument)
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("restore booking id required: %w", ErrInvalidArgument)
	}
	room, err := d.Room(roomNumber)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if _, exists := d.bookings[id]; exists {
		d.mu.Unlock()
		return nil, fmt.Errorf("booking %s: %w", id, ErrDuplicateKey)
	}
	d.mu.Unlock()

	room.commitSpan(start, numberOfDays)

	booking := &Booking{
		ID:           id,
		StartDate:    start,
		NumberOfDays: numberOfDays,
		Room:         room,
		User:         user,
		Selections:   append([]Selection(nil), selections...),
		TotalCost:    total,
	}
	d.registerBooking(booking)
	return booking, nil
}

func validateSpan(start Date, numberOfDays int) error {
	if start.IsZero() {
		return fmt.Errorf("start date required: %w", ErrInvalidArgument)
	}
	if start.Before(Today()) {
		return fmt.Errorf("start date %s is in the past: %w", start, ErrInvalidArgument)
	}
	if numberOfDays < 0 {
		return fmt.Errorf("number of days %d: %w", numberOfDays, ErrInvalidArgument)
	}
	return nil
}
