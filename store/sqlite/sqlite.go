/*
Package sqlite provides a SQLite-backed record of the property directory.

PURPOSE:
  Persists floors, rooms, amenities, users, and bookings so a server restart
  can rebuild the in-memory directory - including every room's availability
  calendar, which is reconstructed by replaying booking records. The engine
  itself never touches this package; the API layer writes through after each
  successful core mutation.

APPEND-ONLY BOOKINGS:
  The core has no reservation modification or cancellation, so the bookings
  table has no UPDATE or DELETE path. AppendBooking is the only write, and a
  duplicate id is rejected.

SELECTIONS:
  A booking's amenity selections are stored as a JSON column on the booking
  row. Selections are few per booking and only ever read back whole, so a
  join table buys nothing.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers don't
  block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/hotel.db")     // or ":memory:"
  if err != nil { ... }
  defer store.Close()

  dir, err := store.LoadDirectory(ctx, "Warp Grand")

SEE ALSO:
  - hotel/directory.go: the in-memory registries this mirrors
  - api/handlers.go: the write-through call sites
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/hotel-engine/hotel"
)

// Store persists the property directory in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS floors (
		number INTEGER PRIMARY KEY,
		handicap_accessible INTEGER NOT NULL,
		restricted_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS rooms (
		number INTEGER PRIMARY KEY,
		floor_number INTEGER NOT NULL,
		bed_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS amenities (
		name TEXT PRIMARY KEY,
		max_per_booking INTEGER NOT NULL,
		cost TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT ''
	);

	-- Bookings (append-only: no update, no delete)
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		room_number INTEGER NOT NULL,
		user_id TEXT,
		start_date TEXT NOT NULL,
		number_of_days INTEGER NOT NULL,
		total_cost TEXT NOT NULL,
		selections_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_room ON bookings(room_number, start_date);
	CREATE INDEX IF NOT EXISTS idx_rooms_floor ON rooms(floor_number);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD TYPES
// =============================================================================

type FloorRecord struct {
	Number             int
	HandicapAccessible bool
	Restricted         []AmenityRecord
}

type RoomRecord struct {
	Number      int
	FloorNumber int
	BedCount    int
}

type AmenityRecord struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
	Cost  string `json:"cost"`
}

type UserRecord struct {
	ID        string
	FirstName string
	LastName  string
}

type SelectionRecord struct {
	Amenity AmenityRecord `json:"amenity"`
	Count   int           `json:"count"`
}

type BookingRecord struct {
	ID           string
	RoomNumber   int
	UserID       string
	StartDate    string // ISO date
	NumberOfDays int
	TotalCost    string
	Selections   []SelectionRecord
	CreatedAt    time.Time
}

func amenityRecord(a hotel.Amenity) AmenityRecord {
	return AmenityRecord{Name: a.Name, Limit: a.Limit, Cost: a.Cost.String()}
}

func (r AmenityRecord) amenity() (hotel.Amenity, error) {
	cost, err := decimal.NewFromString(r.Cost)
	if err != nil {
		return hotel.Amenity{}, fmt.Errorf("amenity %q cost %q: %w", r.Name, r.Cost, err)
	}
	return hotel.Amenity{Name: r.Name, Limit: r.Limit, Cost: cost}, nil
}

// NewFloorRecord converts a floor into its storable form.
func NewFloorRecord(f *hotel.Floor) FloorRecord {
	rec := FloorRecord{Number: f.Number, HandicapAccessible: f.HandicapAccessible}
	for _, a := range f.RestrictedAmenities {
		rec.Restricted = append(rec.Restricted, amenityRecord(a))
	}
	return rec
}

// NewBookingRecord converts a committed booking into its storable form.
func NewBookingRecord(b *hotel.Booking) BookingRecord {
	rec := BookingRecord{
		ID:           b.ID.String(),
		RoomNumber:   b.Room.Number,
		StartDate:    b.StartDate.String(),
		NumberOfDays: b.NumberOfDays,
		TotalCost:    b.TotalCost.String(),
		CreatedAt:    time.Now().UTC(),
	}
	if b.User != nil {
		rec.UserID = b.User.ID.String()
	}
	for _, sel := range b.Selections {
		rec.Selections = append(rec.Selections, SelectionRecord{
			Amenity: amenityRecord(sel.Amenity),
			Count:   sel.Count,
		})
	}
	return rec
}

// =============================================================================
// FLOORS
// =============================================================================

func (s *Store) SaveFloor(ctx context.Context, rec FloorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	restricted, err := json.Marshal(rec.Restricted)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO floors (number, handicap_accessible, restricted_json)
		VALUES (?, ?, ?)`,
		rec.Number, boolToInt(rec.HandicapAccessible), string(restricted))
	return err
}

func (s *Store) ListFloors(ctx context.Context) ([]FloorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, handicap_accessible, restricted_json
		FROM floors ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FloorRecord
	for rows.Next() {
		var rec FloorRecord
		var accessible int
		var restricted string
		if err := rows.Scan(&rec.Number, &accessible, &restricted); err != nil {
			return nil, err
		}
		rec.HandicapAccessible = accessible != 0
		if err := json.Unmarshal([]byte(restricted), &rec.Restricted); err != nil {
			return nil, fmt.Errorf("floor %d restricted amenities: %w", rec.Number, err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// ROOMS
// =============================================================================

func (s *Store) SaveRoom(ctx context.Context, rec RoomRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO rooms (number, floor_number, bed_count)
		VALUES (?, ?, ?)`,
		rec.Number, rec.FloorNumber, rec.BedCount)
	return err
}

func (s *Store) ListRooms(ctx context.Context) ([]RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, floor_number, bed_count FROM rooms ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RoomRecord
	for rows.Next() {
		var rec RoomRecord
		if err := rows.Scan(&rec.Number, &rec.FloorNumber, &rec.BedCount); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// AMENITIES
// =============================================================================

func (s *Store) SaveAmenity(ctx context.Context, rec AmenityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO amenities (name, max_per_booking, cost)
		VALUES (?, ?, ?)`,
		rec.Name, rec.Limit, rec.Cost)
	return err
}

func (s *Store) ListAmenities(ctx context.Context) ([]AmenityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, max_per_booking, cost FROM amenities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AmenityRecord
	for rows.Next() {
		var rec AmenityRecord
		if err := rows.Scan(&rec.Name, &rec.Limit, &rec.Cost); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, rec UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (id, first_name, last_name)
		VALUES (?, ?, ?)`,
		rec.ID, rec.FirstName, rec.LastName)
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserRecord
	for rows.Next() {
		var rec UserRecord
		if err := rows.Scan(&rec.ID, &rec.FirstName, &rec.LastName); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// BOOKINGS (append-only)
// =============================================================================

// AppendBooking records a booking. This is the ONLY write: duplicate ids are
// rejected and nothing is ever updated or deleted.
func (s *Store) AppendBooking(ctx context.Context, rec BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	selections, err := json.Marshal(rec.Selections)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, room_number, user_id, start_date, number_of_days, total_cost, selections_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RoomNumber, rec.UserID, rec.StartDate,
		rec.NumberOfDays, rec.TotalCost, string(selections),
		rec.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// GetBooking returns a single booking record.
func (s *Store) GetBooking(ctx context.Context, id string) (BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, room_number, user_id, start_date, number_of_days, total_cost, selections_json, created_at
		FROM bookings WHERE id = ?`, id)
	return scanBooking(row)
}

// ListBookings returns all bookings in commit order.
func (s *Store) ListBookings(ctx context.Context) ([]BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, room_number, user_id, start_date, number_of_days, total_cost, selections_json, created_at
		FROM bookings ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BookingRecord
	for rows.Next() {
		rec, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (BookingRecord, error) {
	var rec BookingRecord
	var userID sql.NullString
	var selections, createdAt string
	err := row.Scan(&rec.ID, &rec.RoomNumber, &userID, &rec.StartDate,
		&rec.NumberOfDays, &rec.TotalCost, &selections, &createdAt)
	if err != nil {
		return BookingRecord{}, err
	}
	rec.UserID = userID.String
	if err := json.Unmarshal([]byte(selections), &rec.Selections); err != nil {
		return BookingRecord{}, fmt.Errorf("booking %s selections: %w", rec.ID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

// =============================================================================
// DIRECTORY RELOAD
// =============================================================================

// LoadDirectory rebuilds an in-memory directory from the stored records,
// replaying bookings so every room's calendar is reconstructed. A record
// that no longer resolves (unknown room, unparsable date) aborts the load:
// a half-rebuilt directory is worse than a failed start.
func (s *Store) LoadDirectory(ctx context.Context, name string) (*hotel.Directory, error) {
	dir := hotel.New(name)

	amenities, err := s.ListAmenities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load amenities: %w", err)
	}
	for _, rec := range amenities {
		a, err := rec.amenity()
		if err != nil {
			return nil, err
		}
		if _, err := dir.AddAmenity(a.Name, a.Limit, a.Cost); err != nil {
			return nil, fmt.Errorf("restore amenity %q: %w", a.Name, err)
		}
	}

	floors, err := s.ListFloors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load floors: %w", err)
	}
	for _, rec := range floors {
		restricted := make([]hotel.Amenity, 0, len(rec.Restricted))
		for _, ar := range rec.Restricted {
			a, err := ar.amenity()
			if err != nil {
				return nil, err
			}
			restricted = append(restricted, a)
		}
		if _, err := dir.AddFloor(rec.Number, rec.HandicapAccessible, restricted); err != nil {
			return nil, fmt.Errorf("restore floor %d: %w", rec.Number, err)
		}
	}

	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	for _, rec := range rooms {
		if _, err := dir.AddRoom(rec.Number, rec.FloorNumber, rec.BedCount); err != nil {
			return nil, fmt.Errorf("restore room %d: %w", rec.Number, err)
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	userByID := make(map[string]*hotel.User, len(users))
	for _, rec := range users {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("restore user %q: %w", rec.ID, err)
		}
		user, err := dir.RegisterUser(id, rec.FirstName, rec.LastName)
		if err != nil {
			return nil, fmt.Errorf("restore user %q: %w", rec.ID, err)
		}
		userByID[rec.ID] = user
	}

	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	for _, rec := range bookings {
		if err := restoreBooking(dir, rec, userByID); err != nil {
			return nil, err
		}
	}
	return dir, nil
}

func restoreBooking(dir *hotel.Directory, rec BookingRecord, users map[string]*hotel.User) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("restore booking %q: %w", rec.ID, err)
	}
	start, err := hotel.ParseDate(rec.StartDate)
	if err != nil {
		return fmt.Errorf("restore booking %s start date: %w", rec.ID, err)
	}
	total, err := decimal.NewFromString(rec.TotalCost)
	if err != nil {
		return fmt.Errorf("restore booking %s total: %w", rec.ID, err)
	}
	selections := make([]hotel.Selection, 0, len(rec.Selections))
	for _, sr := range rec.Selections {
		a, err := sr.Amenity.amenity()
		if err != nil {
			return fmt.Errorf("restore booking %s: %w", rec.ID, err)
		}
		selections = append(selections, hotel.Selection{Amenity: a, Count: sr.Count})
	}
	if _, err := dir.RestoreBooking(id, rec.RoomNumber, start, rec.NumberOfDays, selections, users[rec.UserID], total); err != nil {
		return fmt.Errorf("restore booking %s: %w", rec.ID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
