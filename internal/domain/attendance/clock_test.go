package attendance

import (
	"errors"
	"testing"

	"dayflow/internal/apperrors"
)

func mustParse(t *testing.T, raw string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]string{"09:00": "09:00", "9:05": "09:05", "23:59": "23:59", " 00:00 ": "00:00"}
	for raw, want := range valid {
		if got := mustParse(t, raw).String(); got != want {
			t.Fatalf("parse %q: got %s want %s", raw, got, want)
		}
	}

	for _, raw := range []string{"", "24:00", "12:60", "1200", "12:5", "ab:cd", "-1:30", "123:00", "+9:30", "-0:30", "+0:+5", "09:-5", "1 :30"} {
		_, err := ParseTimeOfDay(raw)
		if !errors.Is(err, ErrInvalidTime) || !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected invalid time for %q, got %v", raw, err)
		}
	}
}

func TestWorkHours(t *testing.T) {
	in := mustParse(t, "09:00")
	out := mustParse(t, "17:30")

	for _, policy := range []OvernightPolicy{OvernightReject, OvernightNextDay, OvernightNegative} {
		hours, err := WorkHours(in, out, policy)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", policy, err)
		}
		if hours != 8.5 {
			t.Fatalf("%s: expected 8.5 hours, got %v", policy, hours)
		}
	}
}

func TestWorkHoursOvernight(t *testing.T) {
	in := mustParse(t, "09:00")
	out := mustParse(t, "08:00")

	if _, err := WorkHours(in, out, OvernightReject); !errors.Is(err, ErrOvernightShift) {
		t.Fatalf("expected overnight rejection, got %v", err)
	}

	hours, err := WorkHours(in, out, OvernightNegative)
	if err != nil || hours != -1 {
		t.Fatalf("expected -1 hours, got %v (%v)", hours, err)
	}

	hours, err = WorkHours(in, out, OvernightNextDay)
	if err != nil || hours != 23 {
		t.Fatalf("expected 23 hours, got %v (%v)", hours, err)
	}

	hours, err = WorkHours(mustParse(t, "22:00"), mustParse(t, "06:30"), OvernightNextDay)
	if err != nil || hours != 8.5 {
		t.Fatalf("expected 8.5 hours for night shift, got %v (%v)", hours, err)
	}
}

func TestParseOvernightPolicy(t *testing.T) {
	if p, ok := ParseOvernightPolicy("Next_Day"); !ok || p != OvernightNextDay {
		t.Fatalf("unexpected policy %q %v", p, ok)
	}
	if _, ok := ParseOvernightPolicy("wrap"); ok {
		t.Fatal("expected unknown policy to fail")
	}
}
