package settings

import (
	"sort"
	"strings"

	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
)

// Location is a geofenced site employees may punch from.
type Location struct {
	ID           string  `json:"id" validate:"required,max=64"`
	Name         string  `json:"name" validate:"required,max=100"`
	Latitude     float64 `json:"latitude" validate:"latitude"`
	Longitude    float64 `json:"longitude" validate:"longitude"`
	RadiusMeters float64 `json:"radius_meters" validate:"gte=0"`
}

// Settings is the singleton document holding shift rules, locations and holiday calendars.
type Settings struct {
	Holidays       []string              `json:"holidays" validate:"dive,date"`
	UnpaidHolidays []string              `json:"unpaid_holidays" validate:"dive,date"`
	RuleSets       []shiftrule.ShiftRule `json:"rule_sets" validate:"required,min=1,unique=ID,dive"`
	Locations      []Location            `json:"locations" validate:"unique=ID,dive"`
}

// Default is returned when no settings have been saved yet.
func Default() Settings {
	return Settings{
		Holidays:       []string{},
		UnpaidHolidays: []string{},
		RuleSets:       []shiftrule.ShiftRule{shiftrule.Default()},
		Locations:      []Location{},
	}
}

// Normalize sorts and dedupes the holiday lists, fills default radii and
// replaces nil slices with empty ones.
func (s *Settings) Normalize() {
	s.Holidays = sortedUnique(s.Holidays)
	s.UnpaidHolidays = sortedUnique(s.UnpaidHolidays)
	if s.RuleSets == nil {
		s.RuleSets = []shiftrule.ShiftRule{}
	}
	for i := range s.RuleSets {
		s.RuleSets[i].ID = strings.TrimSpace(s.RuleSets[i].ID)
		s.RuleSets[i].Name = strings.TrimSpace(s.RuleSets[i].Name)
		if s.RuleSets[i].WeeklyOffs == nil {
			s.RuleSets[i].WeeklyOffs = []string{}
		}
	}
	if s.Locations == nil {
		s.Locations = []Location{}
	}
	for i := range s.Locations {
		s.Locations[i].ID = strings.TrimSpace(s.Locations[i].ID)
		s.Locations[i].Name = strings.TrimSpace(s.Locations[i].Name)
		if s.Locations[i].RadiusMeters <= 0 {
			s.Locations[i].RadiusMeters = shiftrule.DefaultRadiusMeters
		}
	}
}

func (s Settings) FindRule(id string) (shiftrule.ShiftRule, bool) {
	for _, r := range s.RuleSets {
		if r.ID == id {
			return r, true
		}
	}
	return shiftrule.ShiftRule{}, false
}

func (s Settings) FindLocation(id string) (Location, bool) {
	for _, l := range s.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

func (s Settings) IsHoliday(date string) bool {
	return contains(s.Holidays, date)
}

func (s Settings) IsUnpaidHoliday(date string) bool {
	return contains(s.UnpaidHolidays, date)
}

// SetHoliday adds date to the paid or unpaid list, removing it from the other.
func (s *Settings) SetHoliday(date string, unpaid bool) {
	s.RemoveHoliday(date)
	if unpaid {
		s.UnpaidHolidays = sortedUnique(append(s.UnpaidHolidays, date))
	} else {
		s.Holidays = sortedUnique(append(s.Holidays, date))
	}
}

// RemoveHoliday drops date from both holiday lists.
func (s *Settings) RemoveHoliday(date string) bool {
	before := len(s.Holidays) + len(s.UnpaidHolidays)
	s.Holidays = without(s.Holidays, date)
	s.UnpaidHolidays = without(s.UnpaidHolidays, date)
	return len(s.Holidays)+len(s.UnpaidHolidays) != before
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

func sortedUnique(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
