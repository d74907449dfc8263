package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/api"
	"github.com/warp/hotel-engine/hotel"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) (*hotel.Directory, http.Handler) {
	t.Helper()

	dir := hotel.New("Harbor View")

	pet, err := dir.AddAmenity("pet", 2, decimal.NewFromInt(20))
	require.NoError(t, err)
	_, err = dir.AddAmenity("crib", 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = dir.AddFloor(1, true, nil)
	require.NoError(t, err)
	_, err = dir.AddFloor(2, false, []hotel.Amenity{pet})
	require.NoError(t, err)

	_, err = dir.AddRoom(101, 1, 1)
	require.NoError(t, err)
	_, err = dir.AddRoom(102, 1, 2)
	require.NoError(t, err)
	_, err = dir.AddRoom(201, 2, 1)
	require.NoError(t, err)

	h := api.NewHandler(dir, nil, zerolog.Nop())
	return dir, api.NewRouter(h, zerolog.Nop())
}

func registerGuest(t *testing.T, dir *hotel.Directory) string {
	t.Helper()
	user, err := dir.RegisterUser(uuid.Nil, "Ada", "Lovelace")
	require.NoError(t, err)
	return user.ID.String()
}

func futureStart() string {
	year := time.Now().UTC().Year() + 1
	return fmt.Sprintf("%d-03-10", year)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

// =============================================================================
// PROPERTY ENDPOINTS
// =============================================================================

func TestCreateFloor_ResolvesRestrictionsByName(t *testing.T) {
	// GIVEN a property with a registered amenity catalog
	_, router := newTestServer(t)

	// WHEN a floor is registered with a restriction by name
	w := doJSON(t, router, http.MethodPost, "/api/floors", map[string]any{
		"number":               3,
		"handicap_accessible":  false,
		"restricted_amenities": []string{"pet"},
	})

	// THEN the floor is created with the resolved restriction set
	require.Equal(t, http.StatusCreated, w.Code)
	floor := decodeBody[map[string]any](t, w)
	assert.Equal(t, []any{"pet"}, floor["restricted_amenities"])
}

func TestCreateFloor_UnknownRestriction_NotFound(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/floors", map[string]any{
		"number":               3,
		"restricted_amenities": []string{"helipad"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRoom_UnknownFloor_NotFound(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]any{
		"number": 901, "floor": 9, "bed_count": 1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRoom_DuplicateNumber_Conflict(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]any{
		"number": 101, "floor": 1, "bed_count": 1,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateRoom_UnknownBedCount_BadRequest(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]any{
		"number": 103, "floor": 1, "bed_count": 7,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRooms_RegistrationOrder(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/rooms", nil)

	require.Equal(t, http.StatusOK, w.Code)
	rooms := decodeBody[[]map[string]any](t, w)
	require.Len(t, rooms, 3)
	assert.Equal(t, float64(101), rooms[0]["number"])
	assert.Equal(t, float64(102), rooms[1]["number"])
	assert.Equal(t, float64(201), rooms[2]["number"])
}

func TestCreateUser_AssignsID(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"first_name": "Grace", "last_name": "Hopper",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	user := decodeBody[map[string]any](t, w)
	assert.NotEmpty(t, user["id"])
}

// =============================================================================
// RESERVATION ENDPOINT
// =============================================================================

func TestReserve_CommitsBooking(t *testing.T) {
	// GIVEN a registered guest and a free room
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	// WHEN a three-day stay is reserved
	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room":           101,
		"user_id":        userID,
		"start_date":     futureStart(),
		"number_of_days": 3,
	})

	// THEN the booking is committed with the room rate applied per day
	require.Equal(t, http.StatusCreated, w.Code)
	booking := decodeBody[map[string]any](t, w)
	assert.NotEmpty(t, booking["id"])
	assert.Equal(t, "150", booking["total_cost"])

	// AND the booking is retrievable
	g := doJSON(t, router, http.MethodGet, "/api/bookings/"+booking["id"].(string), nil)
	assert.Equal(t, http.StatusOK, g.Code)
}

func TestReserve_RestrictedAmenity_Conflict(t *testing.T) {
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room":           201,
		"user_id":        userID,
		"start_date":     futureStart(),
		"number_of_days": 2,
		"selections":     []map[string]any{{"amenity": "pet", "count": 1}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReserve_OverLimitSelection_Conflict(t *testing.T) {
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room":           101,
		"user_id":        userID,
		"start_date":     futureStart(),
		"number_of_days": 2,
		"selections":     []map[string]any{{"amenity": "crib", "count": 3}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReserve_OverlappingSpan_Conflict(t *testing.T) {
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	first := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room": 101, "user_id": userID, "start_date": futureStart(), "number_of_days": 3,
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room": 101, "user_id": userID, "start_date": futureStart(), "number_of_days": 1,
	})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestReserve_UnknownRoom_NotFound(t *testing.T) {
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room": 999, "user_id": userID, "start_date": futureStart(), "number_of_days": 1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReserve_UnknownUser_NotFound(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room":           101,
		"user_id":        "0b38e8a3-8f43-46b1-9102-2b29a1f2c20e",
		"start_date":     futureStart(),
		"number_of_days": 1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReserve_MalformedBody_BadRequest(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReserve_PastDate_BadRequest(t *testing.T) {
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room": 101, "user_id": userID, "start_date": "2001-03-10", "number_of_days": 1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// AVAILABILITY ENDPOINT
// =============================================================================

func TestSearchAvailability_FiltersReservedSpans(t *testing.T) {
	// GIVEN room 101 reserved for a three-day span
	dir, router := newTestServer(t)
	userID := registerGuest(t, dir)

	first := doJSON(t, router, http.MethodPost, "/api/bookings", map[string]any{
		"room": 101, "user_id": userID, "start_date": futureStart(), "number_of_days": 3,
	})
	require.Equal(t, http.StatusCreated, first.Code)

	// WHEN searching for a one-bed stay overlapping that span
	w := doJSON(t, router, http.MethodGet,
		"/api/availability?start="+futureStart()+"&days=1&beds=1&handicap=true", nil)

	// THEN only the free accessible one-bed rooms remain
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decodeBody[[]map[string]any](t, w)
	assert.Empty(t, rooms)
}

func TestSearchAvailability_AmenityFilterByName(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet,
		"/api/availability?start="+futureStart()+"&days=2&beds=1&handicap=false&amenities=pet", nil)

	require.Equal(t, http.StatusOK, w.Code)
	rooms := decodeBody[[]map[string]any](t, w)
	require.Empty(t, rooms)
}

func TestSearchAvailability_UnknownAmenity_NotFound(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet,
		"/api/availability?start="+futureStart()+"&days=2&beds=1&amenities=helipad", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchAvailability_BadQuery_BadRequest(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/availability?start=yesterday&days=2&beds=1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// MISC
// =============================================================================

func TestHealthEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
