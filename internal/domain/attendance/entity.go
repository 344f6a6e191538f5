package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04:05"
	MonthLayout = "2006-01"

	// PunchPlaceholder fills punch_in when a punch-out is recorded without one.
	PunchPlaceholder = "???"
)

// Raw status tokens as stored.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// IsStatusToken reports whether s is a storable raw status.
func IsStatusToken(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLate
}

type Selfie struct {
	URL        string    `json:"url"`
	CapturedAt time.Time `json:"captured_at"`
}

type GeoPoint struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

// Entry is one employee's raw attendance for one date. It is either a bare
// status token or a structured punch record; both round-trip through JSON
// in their original shape.
type Entry struct {
	Status      string    `json:"status"`
	PunchIn     *string   `json:"punch_in"`
	PunchOut    *string   `json:"punch_out"`
	SelfieIn    *Selfie   `json:"selfie_in,omitempty"`
	SelfieOut   *Selfie   `json:"selfie_out,omitempty"`
	LocationIn  *GeoPoint `json:"location_in,omitempty"`
	LocationOut *GeoPoint `json:"location_out,omitempty"`

	bare bool
}

// Token builds a bare status entry.
func Token(status string) Entry {
	return Entry{Status: status, bare: true}
}

// IsBare reports whether the entry is a bare status token.
func (e Entry) IsBare() bool {
	return e.bare
}

// Structured returns a copy of e that serializes as a record.
func (e Entry) Structured() Entry {
	e.bare = false
	return e
}

func (e Entry) HasPunchIn() bool {
	return e.PunchIn != nil && *e.PunchIn != ""
}

func (e Entry) HasPunchOut() bool {
	return e.PunchOut != nil && *e.PunchOut != ""
}

type entryRecord Entry

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.bare {
		return json.Marshal(e.Status)
	}
	return json.Marshal(entryRecord(e))
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var status string
		if err := json.Unmarshal(data, &status); err != nil {
			return err
		}
		*e = Token(status)
		return nil
	}

	var rec entryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("attendance entry must be a status string or an object: %w", err)
	}
	*e = Entry(rec)
	e.bare = false
	return nil
}

// Day maps employee key to entry for a single date.
type Day map[string]Entry

// Category is the derived day status.
type Category string

const (
	CategoryUnmarked  Category = "unmarked"
	CategoryPresent   Category = "present"
	CategoryWorking   Category = "working"
	CategoryHalfDay   Category = "halfday"
	CategoryShort     Category = "short"
	CategoryAbsent    Category = "absent"
	CategoryLate      Category = "late"
	CategoryHoliday   Category = "holiday"
	CategoryWeeklyOff Category = "weeklyoff"
	CategoryUpcoming  Category = "upcoming"
	CategoryError     Category = "error"
)

// Verdict is the evaluated status of one employee-day.
type Verdict struct {
	Status   Category `json:"status"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Duration *float64 `json:"duration_hours,omitempty"`
	Credit   float64  `json:"credit"`
	Late     bool     `json:"late"`
}
