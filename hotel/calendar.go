/*
calendar.go - Per-room availability calendar

PURPOSE:
  Represents a room's free/occupied calendar as a set of free day-of-year
  slots per year, and answers "is this room free for this range" queries.
  This is the data structure the whole reservation engine hangs on: a
  double-booking is exactly a day removed from a free-day set twice.

REPRESENTATION:
  map[year] -> 365-bit bitset (six uint64 words). Bit n set = day n+1 free.
  A year with no entry is implicitly fully free; the full set is materialized
  only on the first Commit that touches the year, never by a query.

RANGE CONVENTION:
  A reservation starting on day S for N days spans the INCLUSIVE range
  [S, S+N] - that is N+1 calendar days. This matches the historical booking
  record format; changing it would shift every stored reservation by a day.

KNOWN LIMITATIONS (intentional, do not extend):
  - 365-day years. Day 366 of a leap year is never in any set.
  - No cross-year ranges. A range overflowing day 365 checks and clears
    only within the start year: days past 365 are never present in a
    materialized set (so the range reads as unavailable once the year is
    materialized), and Commit skips them. The following year is untouched.

CONCURRENCY:
  Calendar itself is NOT safe for concurrent use. The owning Room guards it
  with a per-room lock so check-then-commit is atomic per room while
  different rooms proceed in parallel (see types.go, engine.go).

SEE ALSO:
  - types.go: Room.Available / Room.reserveSpan (the lock boundary)
  - engine.go: the reservation transaction around this structure
*/
package hotel

// DaysPerYear is the size of every year's free-day set. Leap days are not
// modeled.
const DaysPerYear = 365

const calendarWords = 6 // 6*64 = 384 bits, days 1..365 plus slack

// yearSet is a bitset over day-of-year values. Bit (d-1) set means day d is
// free.
type yearSet [calendarWords]uint64

func fullYear() *yearSet {
	var s yearSet
	for d := 1; d <= DaysPerYear; d++ {
		s.set(d)
	}
	return &s
}

func (s *yearSet) set(day int)   { s[(day-1)/64] |= 1 << uint((day-1)%64) }
func (s *yearSet) clear(day int) { s[(day-1)/64] &^= 1 << uint((day-1)%64) }

func (s *yearSet) has(day int) bool {
	if day < 1 || day > calendarWords*64 {
		return false
	}
	return s[(day-1)/64]&(1<<uint((day-1)%64)) != 0
}

// Calendar maps year -> free-day set, lazily materialized.
type Calendar struct {
	years map[int]*yearSet
}

func NewCalendar() *Calendar {
	return &Calendar{years: make(map[int]*yearSet)}
}

// IsFree reports whether every day in the inclusive range
// [startDay, startDay+numberOfDays] is free in the given year.
//
// Read-only and side-effect-free: an untouched year is implicitly fully free
// and is NOT materialized by querying. Once a year is materialized, days
// outside 1..365 are never present, so a range overflowing day 365 reports
// unavailable.
func (c *Calendar) IsFree(year, startDay, numberOfDays int) bool {
	if startDay < 1 || numberOfDays < 0 {
		return false
	}
	s, ok := c.years[year]
	if !ok {
		return true
	}
	for d := startDay; d <= startDay+numberOfDays; d++ {
		if !s.has(d) {
			return false
		}
	}
	return true
}

// Commit removes every day in the inclusive range
// [startDay, startDay+numberOfDays] from the year's free-day set,
// materializing the full set first if the year is untouched. Days past 365
// are skipped; the following year is never touched.
//
// Commit does not re-check availability - callers hold the room lock and
// check IsFree first (see Room.reserveSpan).
func (c *Calendar) Commit(year, startDay, numberOfDays int) {
	s, ok := c.years[year]
	if !ok {
		s = fullYear()
		c.years[year] = s
	}
	for d := startDay; d <= startDay+numberOfDays; d++ {
		if d >= 1 && d <= DaysPerYear {
			s.clear(d)
		}
	}
}

// FreeDays returns the number of free days remaining in the year.
// An untouched year reports the full 365.
func (c *Calendar) FreeDays(year int) int {
	s, ok := c.years[year]
	if !ok {
		return DaysPerYear
	}
	n := 0
	for d := 1; d <= DaysPerYear; d++ {
		if s.has(d) {
			n++
		}
	}
	return n
}

// Materialized reports whether the year's set has been allocated. Exposed
// for tests asserting that queries never materialize.
func (c *Calendar) Materialized(year int) bool {
	_, ok := c.years[year]
	return ok
}
