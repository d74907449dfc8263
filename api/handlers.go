/*
handlers.go - HTTP API handlers for the reservation engine

PURPOSE:
  Exposes the hotel directory via REST. Handles HTTP request/response and
  JSON serialization, delegates every decision to the hotel package, and
  writes successful mutations through to the SQLite store.

ENDPOINTS:
  Property:
    GET    /api/floors           List floors
    POST   /api/floors           Register floor
    GET    /api/rooms            List rooms
    POST   /api/rooms            Register room
    GET    /api/amenities        List amenity catalog
    POST   /api/amenities        Register amenity
    POST   /api/users            Register guest

  Reservations:
    GET    /api/availability     Search rooms for a stay
    GET    /api/bookings         List bookings
    POST   /api/bookings         Reserve
    GET    /api/bookings/{id}    Get booking

ERROR HANDLING:
  Errors are returned as JSON with the status derived from the domain
  taxonomy:
  - 400: invalid input (bad dates, negative counts, unknown bed count)
  - 404: unknown floor/room/amenity/booking/user
  - 409: restriction violation, capacity exceeded, room unavailable,
         duplicate registration
  - 500: internal errors (persistence)

WRITE-THROUGH:
  The in-memory directory is the source of truth; after a successful core
  mutation the matching record is written to the store. A persistence
  failure after a committed reservation is logged and surfaced as 500, but
  the reservation stands - the calendar was already committed.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/warp/hotel-engine/hotel"
	"github.com/warp/hotel-engine/observability"
	"github.com/warp/hotel-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Directory *hotel.Directory
	Store     *sqlite.Store // may be nil: persistence disabled
	Log       zerolog.Logger
}

// NewHandler creates a handler around an existing directory. Pass a nil
// store to run without persistence (tests, demos).
func NewHandler(dir *hotel.Directory, store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{Directory: dir, Store: store, Log: log}
}

// =============================================================================
// AMENITY HANDLERS
// =============================================================================

func (h *Handler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	amenities := h.Directory.Amenities()
	dtos := make([]AmenityDTO, len(amenities))
	for i, a := range amenities {
		dtos[i] = toAmenityDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var req CreateAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	cost, err := decimal.NewFromString(req.Cost)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cost", err)
		return
	}

	amenity, err := h.Directory.AddAmenity(req.Name, req.Limit, cost)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Store != nil {
		if err := h.Store.SaveAmenity(r.Context(), sqlite.AmenityRecord{Name: amenity.Name, Limit: amenity.Limit, Cost: amenity.Cost.String()}); err != nil {
			h.Log.Error().Err(err).Str("amenity", amenity.Name).Msg("persist amenity failed")
			writeError(w, http.StatusInternalServerError, "failed to persist amenity", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, toAmenityDTO(amenity))
}

// =============================================================================
// FLOOR HANDLERS
// =============================================================================

func (h *Handler) ListFloors(w http.ResponseWriter, r *http.Request) {
	floors := h.Directory.Floors()
	dtos := make([]FloorDTO, len(floors))
	for i, f := range floors {
		dtos[i] = toFloorDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateFloor(w http.ResponseWriter, r *http.Request) {
	var req CreateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	restricted, err := h.resolveAmenities(req.RestrictedAmenities)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	floor, err := h.Directory.AddFloor(req.Number, req.HandicapAccessible, restricted)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Store != nil {
		if err := h.Store.SaveFloor(r.Context(), sqlite.NewFloorRecord(floor)); err != nil {
			h.Log.Error().Err(err).Int("floor", floor.Number).Msg("persist floor failed")
			writeError(w, http.StatusInternalServerError, "failed to persist floor", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, toFloorDTO(floor))
}

// =============================================================================
// ROOM HANDLERS
// =============================================================================

func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.Directory.Rooms()
	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = toRoomDTO(room)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	room, err := h.Directory.AddRoom(req.Number, req.Floor, req.BedCount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Store != nil {
		rec := sqlite.RoomRecord{Number: room.Number, FloorNumber: room.Floor().Number, BedCount: room.BedCount}
		if err := h.Store.SaveRoom(r.Context(), rec); err != nil {
			h.Log.Error().Err(err).Int("room", room.Number).Msg("persist room failed")
			writeError(w, http.StatusInternalServerError, "failed to persist room", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, toRoomDTO(room))
}

// =============================================================================
// USER HANDLERS
// =============================================================================

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	user, err := h.Directory.RegisterUser(uuid.Nil, req.FirstName, req.LastName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Store != nil {
		rec := sqlite.UserRecord{ID: user.ID.String(), FirstName: user.FirstName, LastName: user.LastName}
		if err := h.Store.SaveUser(r.Context(), rec); err != nil {
			h.Log.Error().Err(err).Str("user", user.ID.String()).Msg("persist user failed")
			writeError(w, http.StatusInternalServerError, "failed to persist user", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, UserDTO{ID: user.ID.String(), FirstName: user.FirstName, LastName: user.LastName})
}

// =============================================================================
// AVAILABILITY SEARCH
// =============================================================================

// SearchAvailability handles
// GET /api/availability?start=2026-03-10&days=3&beds=1&handicap=true&amenities=pet,crib
func (h *Handler) SearchAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := hotel.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err)
		return
	}
	days, err := strconv.Atoi(q.Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid days", err)
		return
	}
	beds, err := strconv.Atoi(q.Get("beds"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid beds", err)
		return
	}
	handicap := q.Get("handicap") == "true"

	var amenities []hotel.Amenity
	if raw := q.Get("amenities"); raw != "" {
		names := strings.Split(raw, ",")
		amenities, err = h.resolveAmenities(names)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}

	rooms, err := h.Directory.FindAvailableRooms(start, days, beds, handicap, amenities)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = toRoomDTO(room)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings := h.Directory.Bookings()
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id", err)
		return
	}
	booking, err := h.Directory.Booking(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(booking))
}

// Reserve handles POST /api/bookings.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	start, err := hotel.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id", err)
		return
	}
	user, err := h.Directory.User(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	selections := make([]hotel.Selection, 0, len(req.Selections))
	for _, sd := range req.Selections {
		amenity, err := h.Directory.Amenity(sd.Amenity)
		if err != nil {
			observability.ObserveReservation("rejected")
			writeDomainError(w, err)
			return
		}
		sel, err := hotel.NewSelection(amenity, sd.Count)
		if err != nil {
			observability.ObserveReservation("rejected")
			writeDomainError(w, err)
			return
		}
		selections = append(selections, sel)
	}

	booking, err := h.Directory.Reserve(req.Room, start, req.NumberOfDays, selections, user)
	if err != nil {
		observability.ObserveReservation(reserveOutcome(err))
		writeDomainError(w, err)
		return
	}
	observability.ObserveReservation("committed")

	if h.Store != nil {
		if err := h.Store.AppendBooking(r.Context(), sqlite.NewBookingRecord(booking)); err != nil {
			// The calendar is already committed; the reservation stands.
			h.Log.Error().Err(err).Str("booking", booking.ID.String()).Msg("persist booking failed")
			writeError(w, http.StatusInternalServerError, "reservation committed but not persisted", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, toBookingDTO(booking))
}

func reserveOutcome(err error) string {
	switch {
	case errors.Is(err, hotel.ErrRestrictionViolation):
		return "restricted"
	case errors.Is(err, hotel.ErrRoomUnavailable):
		return "unavailable"
	case hotel.IsClientError(err) || hotel.IsNotFound(err):
		return "rejected"
	default:
		return "error"
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) resolveAmenities(names []string) ([]hotel.Amenity, error) {
	amenities := make([]hotel.Amenity, 0, len(names))
	for _, name := range names {
		amenity, err := h.Directory.Amenity(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		amenities = append(amenities, amenity)
	}
	return amenities, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Code = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the hotel error taxonomy onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case hotel.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, hotel.ErrRestrictionViolation),
		errors.Is(err, hotel.ErrCapacityExceeded),
		errors.Is(err, hotel.ErrRoomUnavailable),
		errors.Is(err, hotel.ErrDuplicateKey):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case hotel.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}
