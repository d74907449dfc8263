/*
Package hotel provides the core reservation engine for a single property.

PURPOSE:
  This package contains the domain types and algorithms for organizing
  floors and rooms, tracking per-room calendar availability, enforcing
  amenity-restriction and capacity rules, and computing booking cost.
  It is an in-process library: no wire protocol, no persistence, no
  configuration. Presentation and storage layers sit on top (see api/
  and store/sqlite).

KEY CONCEPTS IN THIS FILE (types.go):
  - Amenity: An immutable optional add-on (name, per-unit cost, limit)
  - Selection: A chosen amenity plus a count, capacity-checked on build
  - Floor: Owns the restriction set for its rooms
  - Room: References its floor, exclusively owns its Calendar
  - Booking: Immutable record produced by the reservation commit path

DESIGN PRINCIPLES:
  1. Immutability: Bookings are never modified - no edit or cancel exists
  2. Precision: Uses decimal.Decimal for all money, never float64
  3. Fail fast: Every operation either completes or leaves state untouched
  4. Per-room atomicity: Check-then-commit is serialized per room, not
     globally, so reservations against different rooms run in parallel

SEE ALSO:
  - calendar.go: Free-day set representation and range operations
  - engine.go: The reservation transaction
  - directory.go: Top-level registries and orchestration
*/
package hotel

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMENITY - Optional add-on with per-booking limit
// =============================================================================

// Amenity describes an optional add-on. Immutable value; identity by name,
// unique within a catalog.
type Amenity struct {
	Name  string
	Limit int
	Cost  decimal.Decimal
}

// NewAmenity validates field ranges and builds an Amenity.
func NewAmenity(name string, limit int, cost decimal.Decimal) (Amenity, error) {
	if name == "" {
		return Amenity{}, fmt.Errorf("amenity name required: %w", ErrInvalidArgument)
	}
	if limit < 0 {
		return Amenity{}, fmt.Errorf("amenity limit %d: %w", limit, ErrInvalidArgument)
	}
	if cost.IsNegative() {
		return Amenity{}, fmt.Errorf("amenity cost %s: %w", cost, ErrInvalidArgument)
	}
	return Amenity{Name: name, Limit: limit, Cost: cost}, nil
}

// =============================================================================
// SELECTION - Amenity choice attached to a reservation request
// =============================================================================

// Selection pairs an amenity with a requested count.
// INVARIANT: 0 <= Count <= Amenity.Limit, enforced at construction. The
// engine never accepts a selection that did not come through NewSelection.
type Selection struct {
	Amenity Amenity
	Count   int
}

// NewSelection builds a capacity-checked selection.
func NewSelection(amenity Amenity, count int) (Selection, error) {
	if count < 0 {
		return Selection{}, fmt.Errorf("selection count %d: %w", count, ErrInvalidArgument)
	}
	if count > amenity.Limit {
		return Selection{}, &CapacityError{Amenity: amenity.Name, Count: count, Limit: amenity.Limit}
	}
	return Selection{Amenity: amenity, Count: count}, nil
}

// =============================================================================
// FLOOR - Owns the restriction set for its rooms
// =============================================================================

// Floor groups rooms and carries floor-wide attributes. Immutable after
// creation; the restriction set is owned by the floor and shared (read-only)
// by every room on it.
type Floor struct {
	Number              int
	HandicapAccessible  bool
	RestrictedAmenities []Amenity
}

// Restricts reports whether the named amenity is forbidden on this floor.
func (f *Floor) Restricts(name string) bool {
	for _, a := range f.RestrictedAmenities {
		if a.Name == name {
			return true
		}
	}
	return false
}

// =============================================================================
// USER - Guest identity (external collaborator, interface boundary only)
// =============================================================================

type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

// =============================================================================
// ROOM - Bookable unit with an exclusively owned calendar
// =============================================================================

// Room references its floor (shared, not owned) and exclusively owns its
// availability calendar. Handicap accessibility and amenity restrictions are
// derived from the floor.
type Room struct {
	Number   int
	BedCount int

	floor    *Floor
	calendar *Calendar
	mu       sync.RWMutex // guards calendar: check-then-commit is atomic per room
}

func newRoom(number int, floor *Floor, bedCount int) *Room {
	return &Room{
		Number:   number,
		BedCount: bedCount,
		floor:    floor,
		calendar: NewCalendar(),
	}
}

func (r *Room) Floor() *Floor { return r.floor }

func (r *Room) HandicapAccessible() bool { return r.floor.HandicapAccessible }

func (r *Room) RestrictedAmenities() []Amenity { return r.floor.RestrictedAmenities }

// BaseRate returns the nightly rate for this room's bed count.
func (r *Room) BaseRate() (decimal.Decimal, error) {
	return baseRoomRate(r.BedCount)
}

// Available reports whether every day in the reservation span starting at
// start is free. Read-only: never materializes a calendar year.
func (r *Room) Available(start Date, numberOfDays int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calendar.IsFree(start.Year(), start.DayOfYear(), numberOfDays)
}

// reserveSpan atomically re-checks availability and commits the span.
// This is the per-room critical section: no I/O, no allocation beyond the
// lazily materialized year set.
func (r *Room) reserveSpan(start Date, numberOfDays int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	year, day := start.Year(), start.DayOfYear()
	if !r.calendar.IsFree(year, day, numberOfDays) {
		return &UnavailableError{RoomNumber: r.Number, Year: year, StartDay: day, NumberOfDays: numberOfDays}
	}
	r.calendar.Commit(year, day, numberOfDays)
	return nil
}

// commitSpan clears the span without an availability check. Only the restore
// path uses it; live reservations go through reserveSpan.
func (r *Room) commitSpan(start Date, numberOfDays int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calendar.Commit(start.Year(), start.DayOfYear(), numberOfDays)
}

// =============================================================================
// RATE TABLE - Flat nightly rate by bed count
// =============================================================================

var roomRates = map[int]decimal.Decimal{
	1: decimal.NewFromInt(50),
	2: decimal.NewFromInt(75),
	3: decimal.NewFromInt(90),
}

func baseRoomRate(bedCount int) (decimal.Decimal, error) {
	rate, ok := roomRates[bedCount]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("bed count %d: %w", bedCount, ErrInvalidBedCount)
	}
	return rate, nil
}

// =============================================================================
// BOOKING - Immutable reservation record
// =============================================================================

// Booking records a committed reservation. Created only by the engine's
// commit path (or restored from persistence); immutable thereafter.
type Booking struct {
	ID           uuid.UUID
	StartDate    Date
	NumberOfDays int
	Room         *Room
	User         *User
	Selections   []Selection
	TotalCost    decimal.Decimal
}
