package hotel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/hotel"
)

func roomNumbers(rooms []*hotel.Room) []int {
	nums := make([]int, len(rooms))
	for i, r := range rooms {
		nums[i] = r.Number
	}
	return nums
}

// =============================================================================
// CRITERIA FILTERS
// =============================================================================

func TestFindAvailableRooms_MatchesBedCountAndAccessibility(t *testing.T) {
	// Property layout: 101 (1 bed, accessible), 102 (2 beds, accessible),
	// 201 (1 bed, not accessible).
	d := newTestProperty(t)

	rooms, err := d.FindAvailableRooms(day(10), 2, 1, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{101}, roomNumbers(rooms))

	rooms, err = d.FindAvailableRooms(day(10), 2, 1, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{201}, roomNumbers(rooms))

	rooms, err = d.FindAvailableRooms(day(10), 2, 2, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{102}, roomNumbers(rooms))
}

func TestFindAvailableRooms_ReservedSpanExcludesRoom(t *testing.T) {
	// GIVEN: Room 101 reserved at day 10 for 3 days (occupies 10-13)
	// WHEN: Searching day 11 for 1 day, then day 20 for 1 day
	// THEN: The room is excluded from the first search, included in the second

	d := newTestProperty(t)
	user := newTestGuest(t, d)

	_, err := d.Reserve(101, day(10), 3, nil, user)
	require.NoError(t, err)

	rooms, err := d.FindAvailableRooms(day(11), 1, 1, true, nil)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	rooms, err = d.FindAvailableRooms(day(20), 1, 1, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{101}, roomNumbers(rooms))
}

// =============================================================================
// AMENITY FILTER (coarse rule: excluded only when ALL requested restricted)
// =============================================================================

func TestFindAvailableRooms_AllRequestedRestricted_Excluded(t *testing.T) {
	// GIVEN: Floor 2 restricts "pet"; room 201 sits on it
	// WHEN: Searching with pet as the only requested amenity
	// THEN: Room 201 is excluded

	d := newTestProperty(t)
	pet, err := d.Amenity("pet")
	require.NoError(t, err)

	rooms, err := d.FindAvailableRooms(day(10), 2, 1, false, []hotel.Amenity{pet})
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestFindAvailableRooms_SubsetRestricted_StillIncluded(t *testing.T) {
	// GIVEN: Floor 2 restricts "pet" but not "crib"
	// WHEN: Searching with both pet and crib requested
	// THEN: Room 201 still qualifies - only a room restricting ALL requested
	//       amenities is excluded. The per-amenity rejection happens at
	//       Reserve time instead.

	d := newTestProperty(t)
	pet, _ := d.Amenity("pet")
	crib, _ := d.Amenity("crib")

	rooms, err := d.FindAvailableRooms(day(10), 2, 1, false, []hotel.Amenity{pet, crib})
	require.NoError(t, err)
	assert.Equal(t, []int{201}, roomNumbers(rooms))
}

func TestFindAvailableRooms_NoAmenitiesRequested_NoAmenityFilter(t *testing.T) {
	d := newTestProperty(t)

	rooms, err := d.FindAvailableRooms(day(10), 2, 1, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{201}, roomNumbers(rooms))
}

// =============================================================================
// ORDERING AND VALIDATION
// =============================================================================

func TestFindAvailableRooms_RegistrationOrder(t *testing.T) {
	// Rooms come back in the order they were registered.
	d := hotel.New("Ordered")
	_, err := d.AddFloor(1, true, nil)
	require.NoError(t, err)
	for _, n := range []int{305, 101, 207} {
		_, err := d.AddRoom(n, 1, 1)
		require.NoError(t, err)
	}

	rooms, err := d.FindAvailableRooms(day(10), 1, 1, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{305, 101, 207}, roomNumbers(rooms))
}

func TestFindAvailableRooms_InvalidCriteria(t *testing.T) {
	d := newTestProperty(t)

	_, err := d.FindAvailableRooms(hotel.NewDate(2020, 1, 1), 2, 1, true, nil)
	assert.ErrorIs(t, err, hotel.ErrInvalidArgument)

	_, err = d.FindAvailableRooms(day(10), -1, 1, true, nil)
	assert.ErrorIs(t, err, hotel.ErrInvalidArgument)

	_, err = d.FindAvailableRooms(day(10), 2, 9, true, nil)
	assert.ErrorIs(t, err, hotel.ErrInvalidBedCount)
}

func TestFindAvailableRooms_IsReadOnly(t *testing.T) {
	// Searching must not materialize calendars or otherwise mutate state:
	// the same search twice returns the same rooms.
	d := newTestProperty(t)

	first, err := d.FindAvailableRooms(day(10), 300, 1, true, nil)
	require.NoError(t, err)
	second, err := d.FindAvailableRooms(day(10), 300, 1, true, nil)
	require.NoError(t, err)
	assert.Equal(t, roomNumbers(first), roomNumbers(second))
}
