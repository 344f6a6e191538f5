package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-42d3-a456-426614174000",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-02d3-a456-426614174000",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2024-02"); !ok {
		t.Errorf("IsValidMonth(%q) = false, want true", "2024-02")
	}
	for _, s := range []string{"2024-13", "2024-2", "02-2024", ""} {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidClockAndPunchTime(t *testing.T) {
	cases := []struct {
		input     string
		clock     bool
		punchTime bool
	}{
		{"09:00", true, false},
		{"23:59", true, false},
		{"24:00", false, false},
		{"9:00", false, false},
		{"09:00:00", false, true},
		{"17:30:59", false, true},
		{"17:60:00", false, false},
		{"???", false, false},
	}
	for _, c := range cases {
		if got := IsValidClock(c.input); got != c.clock {
			t.Errorf("IsValidClock(%q) = %v, want %v", c.input, got, c.clock)
		}
		if got := IsValidPunchTime(c.input); got != c.punchTime {
			t.Errorf("IsValidPunchTime(%q) = %v, want %v", c.input, got, c.punchTime)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+91 98765 43210", "9876543210", "08-1234-567890"}
	invalid := []string{"12345", "abc0812345678", "0812345678a", "+1234567890123456"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var empty ValidationErrors
	if empty.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() = %v, want nil", empty.Err())
	}
	errs := ValidationErrors{{Field: "a", Message: "b"}}
	if errs.Err() == nil {
		t.Errorf("ValidationErrors.Err() = nil, want error")
	}
}

type structSample struct {
	Name   string   `json:"name" validate:"required"`
	Start  string   `json:"start" validate:"omitempty,clock"`
	Half   float64  `json:"half" validate:"gte=0"`
	Full   float64  `json:"full" validate:"gtefield=Half"`
	Offs   []string `json:"offs" validate:"dive,weekday"`
	Nested []struct {
		Day string `json:"day" validate:"date"`
	} `json:"nested" validate:"dive"`
}

func TestStruct(t *testing.T) {
	ok := structSample{Name: "General", Start: "09:00", Half: 4, Full: 8, Offs: []string{"Sunday"}}
	if err := Struct(ok); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	bad := structSample{Start: "9am", Half: 5, Full: 4, Offs: []string{"Funday"}}
	bad.Nested = append(bad.Nested, struct {
		Day string `json:"day" validate:"date"`
	}{Day: "2024-13-01"})

	err := Struct(bad)
	errs, isValidation := err.(ValidationErrors)
	if !isValidation {
		t.Fatalf("Struct(invalid) error type = %T, want ValidationErrors", err)
	}
	got := errs.ToMap()
	for _, field := range []string{"name", "start", "full", "offs[0]", "nested[0].day"} {
		if _, found := got[field]; !found {
			t.Errorf("Struct(invalid) missing error for %q, got %v", field, got)
		}
	}
	if got["full"] != "full must be greater than or equal to half" {
		t.Errorf("unexpected message for full: %q", got["full"])
	}
}
