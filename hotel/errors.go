/*
errors.go - Centralized error types for the reservation core

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every core operation fails fast: when an error is returned, no registry
  or calendar state has been modified.

ERROR CATEGORIES:
  1. Validation errors - malformed or out-of-range input
  2. Business rule violations - restriction, capacity, availability
  3. Lookup errors - unknown floors, rooms, amenities, bookings

USAGE:
  Callers classify with errors.Is against the sentinels:

    if errors.Is(err, hotel.ErrRoomUnavailable) {
        // pick a different room or date
    }

  Structured variants carry context and unwrap to their sentinel:

    var restErr *hotel.RestrictionError
    if errors.As(err, &restErr) {
        fmt.Println(restErr.Amenity, restErr.FloorNumber)
    }
*/
package hotel

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is returned for nil, negative, or malformed input
	// (negative day counts, past start dates, missing references).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRestrictionViolation is returned when a requested amenity is
	// restricted on the room's floor. No booking is created.
	ErrRestrictionViolation = errors.New("amenity restricted on this floor")

	// ErrCapacityExceeded is returned when a selection's count exceeds the
	// amenity's per-booking limit. Raised at selection construction, before
	// the engine is ever involved.
	ErrCapacityExceeded = errors.New("amenity count exceeds limit")

	// ErrRoomUnavailable is returned when the requested date range overlaps
	// an existing reservation for the room.
	ErrRoomUnavailable = errors.New("room not available for these dates")

	// ErrInvalidBedCount is returned when a room's bed count has no entry in
	// the rate table.
	ErrInvalidBedCount = errors.New("invalid number of beds")

	// ErrFloorNotFound is returned when a referenced floor is not registered.
	ErrFloorNotFound = errors.New("floor not found")

	// ErrRoomNotFound is returned when a referenced room is not registered.
	ErrRoomNotFound = errors.New("room not found")

	// ErrAmenityNotFound is returned when a referenced amenity is not in the
	// catalog.
	ErrAmenityNotFound = errors.New("amenity not found")

	// ErrBookingNotFound is returned when a booking id is not registered.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrUserNotFound is returned when a referenced user is not registered.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateKey is returned when registering a floor, room, amenity, or
	// booking under a key that already exists.
	ErrDuplicateKey = errors.New("key already registered")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RestrictionError reports which amenity was rejected and where.
type RestrictionError struct {
	Amenity     string
	RoomNumber  int
	FloorNumber int
}

func (e *RestrictionError) Error() string {
	return fmt.Sprintf("amenity %q is restricted on floor %d (room %d)",
		e.Amenity, e.FloorNumber, e.RoomNumber)
}

func (e *RestrictionError) Unwrap() error { return ErrRestrictionViolation }

// CapacityError reports a selection count over the amenity's limit.
type CapacityError struct {
	Amenity string
	Count   int
	Limit   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("amenity %q: count %d exceeds limit %d",
		e.Amenity, e.Count, e.Limit)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// UnavailableError reports the room and day range that failed the
// availability check.
type UnavailableError struct {
	RoomNumber   int
	Year         int
	StartDay     int
	NumberOfDays int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("room %d unavailable: year %d days %d-%d",
		e.RoomNumber, e.Year, e.StartDay, e.StartDay+e.NumberOfDays)
}

func (e *UnavailableError) Unwrap() error { return ErrRoomUnavailable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input or
// a business rule rejection, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrRestrictionViolation) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrRoomUnavailable) ||
		errors.Is(err, ErrInvalidBedCount) ||
		errors.Is(err, ErrDuplicateKey)
}

// IsNotFound returns true if the error indicates a missing registration.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFloorNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrAmenityNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
