package attendance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEntry_BareTokenRoundTrip(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`"late"`), &e))

	assert.True(t, e.IsBare())
	assert.Equal(t, StatusLate, e.Status)
	assert.False(t, e.HasPunchIn())

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `"late"`, string(out))
}

func TestEntry_RecordRoundTrip(t *testing.T) {
	raw := `{"status":"present","punch_in":"09:00:00","punch_out":null,"selfie_in":{"url":"/uploads/a.jpg","captured_at":"2024-03-01T09:00:00Z"}}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.False(t, e.IsBare())
	assert.True(t, e.HasPunchIn())
	assert.False(t, e.HasPunchOut())
	require.NotNil(t, e.SelfieIn)
	assert.Equal(t, "/uploads/a.jpg", e.SelfieIn.URL)

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestEntry_DayMixedShapes(t *testing.T) {
	day := Day{
		"u1": Token(StatusAbsent),
		"u2": {Status: StatusPresent, PunchIn: strPtr("09:00:00"), PunchOut: strPtr("18:00:00")},
	}

	out, err := json.Marshal(day)
	require.NoError(t, err)

	var back Day
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, day, back)
	assert.True(t, back["u1"].IsBare())
	assert.False(t, back["u2"].IsBare())
}

func TestEntry_RejectsInvalidJSON(t *testing.T) {
	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`42`), &e))
}

func TestEntry_Structured(t *testing.T) {
	e := Token(StatusPresent).Structured()
	e.PunchIn = strPtr("10:00:00")

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"present","punch_in":"10:00:00","punch_out":null}`, string(out))
}

func TestGeofenceError(t *testing.T) {
	err := &GeofenceError{DistanceMeters: 250, RadiusMeters: 100}

	assert.ErrorIs(t, err, ErrOutsideAllowedRadius)
	assert.Equal(t, "you are outside the allowed attendance location (250m away, allowed 100m)", err.Error())
}

func TestMarkRequest_Entry(t *testing.T) {
	req := MarkRequest{Date: "2024-03-01", EmployeeKey: "u1", Status: StatusPresent}
	require.NoError(t, req.Validate())
	assert.True(t, req.Entry().IsBare())

	req.PunchIn = strPtr("09:00:00")
	assert.False(t, req.Entry().IsBare())

	bad := MarkRequest{Date: "2024-13-01", Status: "sleeping", PunchIn: strPtr("9am")}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}
