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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
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

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", "", "yesterday"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidLatitude(t *testing.T) {
	cases := []struct {
		lat  float64
		want bool
	}{
		{0, true},
		{-90, true},
		{90, true},
		{12.9716, true},
		{-90.0001, false},
		{91, false},
	}
	for _, c := range cases {
		if got := IsValidLatitude(c.lat); got != c.want {
			t.Errorf("IsValidLatitude(%v) = %v, want %v", c.lat, got, c.want)
		}
	}
}

func TestIsValidLongitude(t *testing.T) {
	cases := []struct {
		lng  float64
		want bool
	}{
		{0, true},
		{-180, true},
		{180, true},
		{77.5946, true},
		{180.5, false},
		{-181, false},
	}
	for _, c := range cases {
		if got := IsValidLongitude(c.lng); got != c.want {
			t.Errorf("IsValidLongitude(%v) = %v, want %v", c.lng, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"PRESENT", "LATE", "ABSENT"}
	if !IsInSlice("LATE", slice) {
		t.Error("IsInSlice(LATE) = false, want true")
	}
	if IsInSlice("late", slice) {
		t.Error("IsInSlice(late) = true, want false")
	}
	if IsInSlice("", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}
