/*
search.go - Availability search across the room registry

PURPOSE:
  FindAvailableRooms answers "which rooms could take this stay": a linear
  scan over registered rooms in registration order, filtering on handicap
  accessibility, exact bed count, calendar availability, and the amenity
  restriction rule.

AMENITY FILTER (coarse by contract):
  When the request names amenities, a room is excluded only if ALL of them
  are restricted on its floor. A room restricting a strict subset still
  qualifies - the per-selection rejection happens at Reserve time, not here.
  Callers that want per-amenity filtering must check Floor.Restricts
  themselves; see the open-question note in DESIGN.md.
*/
package hotel

// FindAvailableRooms returns the rooms matching the stay criteria, in room
// registration order. Read-only: no calendar year is materialized by
// searching.
func (d *Directory) FindAvailableRooms(start Date, numberOfDays, bedCount int, handicapAccessible bool, amenities []Amenity) ([]*Room, error) {
	if err := validateSpan(start, numberOfDays); err != nil {
		return nil, err
	}
	if _, err := baseRoomRate(bedCount); err != nil {
		return nil, err
	}

	var available []*Room
	for _, room := range d.Rooms() {
		if room.HandicapAccessible() != handicapAccessible {
			continue
		}
		if room.BedCount != bedCount {
			continue
		}
		if len(amenities) > 0 && restrictsAll(room.floor, amenities) {
			continue
		}
		if !room.Available(start, numberOfDays) {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

func restrictsAll(floor *Floor, amenities []Amenity) bool {
	for _, a := range amenities {
		if !floor.Restricts(a.Name) {
			return false
		}
	}
	return true
}
