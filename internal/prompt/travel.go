package prompt

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// TravelTimes holds the walking minutes between pairs of stages. Lookups are
// case-insensitive and symmetric.
type TravelTimes struct {
	stages  []string
	minutes map[string]int
}

func pairKey(from, to string) string {
	a, b := strings.ToLower(from), strings.ToLower(to)
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// NewTravelTimes builds an empty table.
func NewTravelTimes() *TravelTimes {
	return &TravelTimes{minutes: make(map[string]int)}
}

// Set records the walking minutes between two stages.
func (t *TravelTimes) Set(from, to string, minutes int) {
	for _, s := range []string{from, to} {
		found := false
		for _, existing := range t.stages {
			if strings.EqualFold(existing, s) {
				found = true
				break
			}
		}
		if !found {
			t.stages = append(t.stages, s)
		}
	}
	t.minutes[pairKey(from, to)] = minutes
}

// Minutes returns the walking time between two stages, or 0 when the pair is
// unknown or identical.
func (t *TravelTimes) Minutes(from, to string) int {
	if strings.EqualFold(from, to) {
		return 0
	}
	return t.minutes[pairKey(from, to)]
}

// LoadTravelTimes reads a walking-time matrix in CSV form: a header row of
// stage names, then one row per stage with the minutes to every column.
func LoadTravelTimes(r io.Reader) (*TravelTimes, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading walking-time csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("walking-time csv needs a header row and at least one stage row")
	}

	header := records[0]
	t := NewTravelTimes()
	for _, row := range records[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("walking-time csv row for %q has %d columns, header has %d", row[0], len(row), len(header))
		}
		from := row[0]
		for col := 1; col < len(row); col++ {
			minutes, err := strconv.Atoi(strings.TrimSpace(row[col]))
			if err != nil {
				return nil, fmt.Errorf("walking-time csv %q to %q: %w", from, header[col], err)
			}
			t.Set(from, header[col], minutes)
		}
	}
	return t, nil
}

// Render lists every known stage pair with a non-zero walking time, one line
// each, in stable order. Zero-minute pairs are left out rather than printed
// as "0 minutes".
func (t *TravelTimes) Render() string {
	var lines []string
	for i, from := range t.stages {
		for _, to := range t.stages[i+1:] {
			minutes := t.Minutes(from, to)
			if minutes == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s to %s: %d minutes", from, to, minutes))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
