/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: money travels
  as decimal strings, dates as ISO dates, amenities by catalog name.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers parse and delegate; the domain layer owns the business rules.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/hotel-engine/hotel"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AmenityDTO represents a catalog amenity.
type AmenityDTO struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
	Cost  string `json:"cost"`
}

// CreateAmenityRequest registers a catalog amenity.
type CreateAmenityRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
	Cost  string `json:"cost"`
}

// FloorDTO represents a floor and its restriction set.
type FloorDTO struct {
	Number              int      `json:"number"`
	HandicapAccessible  bool     `json:"handicap_accessible"`
	RestrictedAmenities []string `json:"restricted_amenities,omitempty"`
}

// CreateFloorRequest registers a floor. Restricted amenities are referenced
// by catalog name.
type CreateFloorRequest struct {
	Number              int      `json:"number"`
	HandicapAccessible  bool     `json:"handicap_accessible"`
	RestrictedAmenities []string `json:"restricted_amenities,omitempty"`
}

// RoomDTO represents a room.
type RoomDTO struct {
	Number             int  `json:"number"`
	Floor              int  `json:"floor"`
	BedCount           int  `json:"bed_count"`
	HandicapAccessible bool `json:"handicap_accessible"`
}

// CreateRoomRequest registers a room on an existing floor.
type CreateRoomRequest struct {
	Number   int `json:"number"`
	Floor    int `json:"floor"`
	BedCount int `json:"bed_count"`
}

// UserDTO represents a registered guest.
type UserDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateUserRequest registers a guest.
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SelectionDTO is an amenity choice on a reservation.
type SelectionDTO struct {
	Amenity string `json:"amenity"`
	Count   int    `json:"count"`
}

// ReserveRequest submits a reservation.
type ReserveRequest struct {
	Room         int            `json:"room"`
	UserID       string         `json:"user_id"`
	StartDate    string         `json:"start_date"` // ISO date
	NumberOfDays int            `json:"number_of_days"`
	Selections   []SelectionDTO `json:"selections,omitempty"`
}

// BookingDTO represents a committed booking.
type BookingDTO struct {
	ID           string         `json:"id"`
	Room         int            `json:"room"`
	UserID       string         `json:"user_id,omitempty"`
	StartDate    string         `json:"start_date"`
	NumberOfDays int            `json:"number_of_days"`
	TotalCost    string         `json:"total_cost"`
	Selections   []SelectionDTO `json:"selections,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toAmenityDTO(a hotel.Amenity) AmenityDTO {
	return AmenityDTO{Name: a.Name, Limit: a.Limit, Cost: a.Cost.String()}
}

func toFloorDTO(f *hotel.Floor) FloorDTO {
	dto := FloorDTO{Number: f.Number, HandicapAccessible: f.HandicapAccessible}
	for _, a := range f.RestrictedAmenities {
		dto.RestrictedAmenities = append(dto.RestrictedAmenities, a.Name)
	}
	return dto
}

func toRoomDTO(r *hotel.Room) RoomDTO {
	return RoomDTO{
		Number:             r.Number,
		Floor:              r.Floor().Number,
		BedCount:           r.BedCount,
		HandicapAccessible: r.HandicapAccessible(),
	}
}

func toBookingDTO(b *hotel.Booking) BookingDTO {
	dto := BookingDTO{
		ID:           b.ID.String(),
		Room:         b.Room.Number,
		StartDate:    b.StartDate.String(),
		NumberOfDays: b.NumberOfDays,
		TotalCost:    b.TotalCost.String(),
	}
	if b.User != nil {
		dto.UserID = b.User.ID.String()
	}
	for _, sel := range b.Selections {
		dto.Selections = append(dto.Selections, SelectionDTO{Amenity: sel.Amenity.Name, Count: sel.Count})
	}
	return dto
}
