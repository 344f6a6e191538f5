package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenz/presenz-backend-go/internal/domain/shiftrule"
)

func TestNormalize(t *testing.T) {
	s := Settings{
		Holidays:  []string{"2024-03-25", " 2024-01-26", "2024-03-25", ""},
		RuleSets:  []shiftrule.ShiftRule{{ID: " night ", Name: "Night"}},
		Locations: []Location{{ID: "hq", Name: "HQ"}},
	}
	s.Normalize()

	assert.Equal(t, []string{"2024-01-26", "2024-03-25"}, s.Holidays)
	assert.Equal(t, []string{}, s.UnpaidHolidays)
	assert.Equal(t, "night", s.RuleSets[0].ID)
	assert.Equal(t, []string{}, s.RuleSets[0].WeeklyOffs)
	assert.Equal(t, shiftrule.DefaultRadiusMeters, s.Locations[0].RadiusMeters)
}

func TestSetHoliday_MovesBetweenLists(t *testing.T) {
	s := Default()

	s.SetHoliday("2024-08-15", false)
	assert.True(t, s.IsHoliday("2024-08-15"))
	assert.False(t, s.IsUnpaidHoliday("2024-08-15"))

	s.SetHoliday("2024-08-15", true)
	assert.False(t, s.IsHoliday("2024-08-15"))
	assert.True(t, s.IsUnpaidHoliday("2024-08-15"))

	assert.True(t, s.RemoveHoliday("2024-08-15"))
	assert.False(t, s.RemoveHoliday("2024-08-15"))
}

func TestFind(t *testing.T) {
	s := Default()
	s.Locations = []Location{{ID: "hq", Name: "HQ", RadiusMeters: 150}}

	rule, ok := s.FindRule(shiftrule.DefaultID)
	require.True(t, ok)
	assert.Equal(t, shiftrule.DefaultName, rule.Name)

	_, ok = s.FindRule("missing")
	assert.False(t, ok)

	loc, ok := s.FindLocation("hq")
	require.True(t, ok)
	assert.Equal(t, 150.0, loc.RadiusMeters)
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateSettingsRequest
		wantErr string
	}{
		{
			name: "valid",
			req: UpdateSettingsRequest{
				Holidays: []string{"2024-01-26"},
				RuleSets: []shiftrule.ShiftRule{shiftrule.Default()},
			},
		},
		{
			name:    "no rule sets",
			req:     UpdateSettingsRequest{},
			wantErr: "rule_sets",
		},
		{
			name: "duplicate rule ids",
			req: UpdateSettingsRequest{
				RuleSets: []shiftrule.ShiftRule{shiftrule.Default(), shiftrule.Default()},
			},
			wantErr: "rule_sets",
		},
		{
			name: "full day below half day",
			req: UpdateSettingsRequest{
				RuleSets: []shiftrule.ShiftRule{{ID: "r", Name: "R", MinHalfDayHours: 5, MinFullDayHours: 4}},
			},
			wantErr: "min_full_day_hours",
		},
		{
			name: "bad holiday",
			req: UpdateSettingsRequest{
				Holidays: []string{"26/01/2024"},
				RuleSets: []shiftrule.ShiftRule{shiftrule.Default()},
			},
			wantErr: "holidays",
		},
		{
			name: "bad latitude",
			req: UpdateSettingsRequest{
				RuleSets:  []shiftrule.ShiftRule{shiftrule.Default()},
				Locations: []Location{{ID: "hq", Name: "HQ", Latitude: 123}},
			},
			wantErr: "latitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
