/*
directory.go - Top-level property registries and orchestration

PURPOSE:
  The Directory is the single owner of all Floors, Rooms, Amenities, Users,
  and Bookings for one property. Every mutation of those registries goes
  through the Directory; validation happens before any map write, so a
  failed call leaves nothing half-registered.

REGISTRIES:
  floorNumber -> *Floor
  roomNumber  -> *Room      (insertion order preserved for search)
  name        -> Amenity    (the amenity catalog)
  userID      -> *User
  bookingID   -> *Booking   (append-only: no edit or cancel exists)

CONCURRENCY:
  A single RWMutex guards the registries. Searches and lookups take the read
  lock and never observe a half-constructed room or booking. Calendar state
  is NOT under this lock - each room carries its own lock so reservations
  against different rooms do not serialize (see engine.go).

SEE ALSO:
  - engine.go: Reserve, the reservation transaction
  - search.go: FindAvailableRooms
*/
package hotel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Directory is the top-level registry for a single property.
type Directory struct {
	name string

	mu        sync.RWMutex
	floors    map[int]*Floor
	rooms     map[int]*Room
	roomOrder []int // registration order, drives search iteration
	amenities map[string]Amenity
	users     map[uuid.UUID]*User
	bookings  map[uuid.UUID]*Booking
	bookOrder []uuid.UUID
}

// New creates an empty directory for the named property.
func New(name string) *Directory {
	return &Directory{
		name:      name,
		floors:    make(map[int]*Floor),
		rooms:     make(map[int]*Room),
		amenities: make(map[string]Amenity),
		users:     make(map[uuid.UUID]*User),
		bookings:  make(map[uuid.UUID]*Booking),
	}
}

func (d *Directory) Name() string { return d.name }

// =============================================================================
// FLOORS
// =============================================================================

// AddFloor registers a floor with its restriction set.
func (d *Directory) AddFloor(number int, handicapAccessible bool, restricted []Amenity) (*Floor, error) {
	if number < 0 {
		return nil, fmt.Errorf("floor number %d: %w", number, ErrInvalidArgument)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.floors[number]; exists {
		return nil, fmt.Errorf("floor %d: %w", number, ErrDuplicateKey)
	}
	floor := &Floor{
		Number:              number,
		HandicapAccessible:  handicapAccessible,
		RestrictedAmenities: append([]Amenity(nil), restricted...),
	}
	d.floors[number] = floor
	return floor, nil
}

// Floor returns the registered floor, or ErrFloorNotFound.
func (d *Directory) Floor(number int) (*Floor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	floor, ok := d.floors[number]
	if !ok {
		return nil, fmt.Errorf("floor %d: %w", number, ErrFloorNotFound)
	}
	return floor, nil
}

// Floors returns all floors in number order.
func (d *Directory) Floors() []*Floor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]*Floor, 0, len(d.floors))
	for _, f := range d.floors {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result
}

// =============================================================================
// ROOMS
// =============================================================================

// AddRoom registers a room on an existing floor.
func (d *Directory) AddRoom(number, floorNumber, bedCount int) (*Room, error) {
	if number < 0 {
		return nil, fmt.Errorf("room number %d: %w", number, ErrInvalidArgument)
	}
	if _, err := baseRoomRate(bedCount); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	floor, ok := d.floors[floorNumber]
	if !ok {
		return nil, fmt.Errorf("floor %d: %w", floorNumber, ErrFloorNotFound)
	}
	if _, exists := d.rooms[number]; exists {
		return nil, fmt.Errorf("room %d: %w", number, ErrDuplicateKey)
	}
	room := newRoom(number, floor, bedCount)
	d.rooms[number] = room
	d.roomOrder = append(d.roomOrder, number)
	return room, nil
}

// Room returns the registered room, or ErrRoomNotFound.
func (d *Directory) Room(number int) (*Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[number]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", number, ErrRoomNotFound)
	}
	return room, nil
}

// Rooms returns all rooms in registration order.
func (d *Directory) Rooms() []*Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.roomsLocked()
}

func (d *Directory) roomsLocked() []*Room {
	result := make([]*Room, 0, len(d.roomOrder))
	for _, n := range d.roomOrder {
		result = append(result, d.rooms[n])
	}
	return result
}

// =============================================================================
// AMENITY CATALOG
// =============================================================================

// AddAmenity registers an amenity in the catalog.
func (d *Directory) AddAmenity(name string, limit int, cost decimal.Decimal) (Amenity, error) {
	amenity, err := NewAmenity(name, limit, cost)
	if err != nil {
		return Amenity{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.amenities[name]; exists {
		return Amenity{}, fmt.Errorf("amenity %q: %w", name, ErrDuplicateKey)
	}
	d.amenities[name] = amenity
	return amenity, nil
}

// Amenity looks up a catalog amenity by name.
func (d *Directory) Amenity(name string) (Amenity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	amenity, ok := d.amenities[name]
	if !ok {
		return Amenity{}, fmt.Errorf("amenity %q: %w", name, ErrAmenityNotFound)
	}
	return amenity, nil
}

// Amenities returns the catalog in name order.
func (d *Directory) Amenities() []Amenity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]Amenity, 0, len(d.amenities))
	for _, a := range d.amenities {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// =============================================================================
// USERS
// =============================================================================

// RegisterUser records a guest. A zero ID gets a fresh UUID.
func (d *Directory) RegisterUser(id uuid.UUID, firstName, lastName string) (*User, error) {
	if firstName == "" && lastName == "" {
		return nil, fmt.Errorf("user name required: %w", ErrInvalidArgument)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.users[id]; exists {
		return nil, fmt.Errorf("user %s: %w", id, ErrDuplicateKey)
	}
	user := &User{ID: id, FirstName: firstName, LastName: lastName}
	d.users[id] = user
	return user, nil
}

// User returns the registered user, or ErrUserNotFound.
func (d *Directory) User(id uuid.UUID) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}
	return user, nil
}

// =============================================================================
// BOOKINGS (append-only registry)
// =============================================================================

// Booking returns a registered booking, or ErrBookingNotFound.
func (d *Directory) Booking(id uuid.UUID) (*Booking, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	booking, ok := d.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
	}
	return booking, nil
}

// Bookings returns all bookings in commit order.
func (d *Directory) Bookings() []*Booking {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]*Booking, 0, len(d.bookOrder))
	for _, id := range d.bookOrder {
		result = append(result, d.bookings[id])
	}
	return result
}

func (d *Directory) registerBooking(b *Booking) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bookings[b.ID] = b
	d.bookOrder = append(d.bookOrder, b.ID)
}
