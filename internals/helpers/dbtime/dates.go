// file: internals/helpers/dbtime/dates.go
package dbtime

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// FixedZone bikin zona dari offset menit (positif = timur UTC).
func FixedZone(offsetMinutes int) *time.Location {
	return time.FixedZone("", offsetMinutes*60)
}

// DateOf: ambil tanggal kalender t (di lokasinya sendiri) → midnight UTC.
// Semua tanggal occurrence disimpan dalam bentuk ini supaya tidak bergeser.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LocalDateOf: tanggal kalender dari instant t dilihat di offset lokal.
func LocalDateOf(t time.Time, offsetMinutes int) time.Time {
	return DateOf(t.In(FixedZone(offsetMinutes)))
}

// CombineLocalDateAndClock: tanggal + jam:menit di offset lokal → UTC.
func CombineLocalDateAndClock(date time.Time, hour, minute, offsetMinutes int) time.Time {
	local := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, FixedZone(offsetMinutes))
	return local.UTC()
}

// StartOfLocalDay: instant 00:00 lokal dari tanggal kalender date.
func StartOfLocalDay(date time.Time, offsetMinutes int) time.Time {
	return CombineLocalDateAndClock(date, 0, 0, offsetMinutes)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DateSet: himpunan tanggal kalender (key = midnight UTC).
type DateSet map[time.Time]struct{}

func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s DateSet) Add(d time.Time) { s[DateOf(d)] = struct{}{} }

func (s DateSet) Has(d time.Time) bool {
	_, ok := s[DateOf(d)]
	return ok
}

func (s DateSet) Len() int { return len(s) }

// Max returns the latest date, ok=false when the set is empty.
func (s DateSet) Max() (time.Time, bool) {
	var max time.Time
	found := false
	for d := range s {
		if !found || d.After(max) {
			max = d
			found = true
		}
	}
	return max, found
}

func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
