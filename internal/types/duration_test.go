package types

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"500ms", 500},
		{"1h30m", 5_400_000},
		{"2d4h30m15s", 2*86_400_000 + 4*3_600_000 + 30*60_000 + 15*1_000},
		{"1.5s", 1500},
		{"0ms", 0},
		{"-500ms", -500},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.raw)
		if err != nil {
			t.Fatalf("ParseDuration(%q) returned error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

// The ms-before-m/s ordering is the one detail the spec calls out by name:
// "500ms" must not lex as 500 minutes plus a stray "s".
func TestParseDurationMillisecondsBeforeMinutesOrSeconds(t *testing.T) {
	got, err := ParseDuration("500ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 500 {
		t.Fatalf("500ms parsed as %d ms, want 500 (not 500 minutes)", got)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := int64(19737) // days between 1970-01-01 and 2024-01-15
	if got != want {
		t.Errorf("ParseDate(2024-01-15) = %d, want %d", got, want)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("14:30:00.500")
	if err != nil {
		t.Fatalf("ParseTimeOfDay returned error: %v", err)
	}
	want := int64(14*3_600_000 + 30*60_000 + 500)
	if got != want {
		t.Errorf("ParseTimeOfDay(14:30:00.500) = %d, want %d", got, want)
	}
}

func TestParseTimeOfDayNoFraction(t *testing.T) {
	got, err := ParseTimeOfDay("00:00:01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1000 {
		t.Errorf("ParseTimeOfDay(00:00:01) = %d, want 1000", got)
	}
}

func TestParseDateAndTime(t *testing.T) {
	got, err := ParseDateAndTime("2024-01-15-14:30:00.500")
	if err != nil {
		t.Fatalf("ParseDateAndTime returned error: %v", err)
	}
	days, _ := ParseDate("2024-01-15")
	wantTod, _ := ParseTimeOfDay("14:30:00.500")
	want := days*86_400_000 + wantTod
	if got != want {
		t.Errorf("ParseDateAndTime(...) = %d, want %d", got, want)
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, raw := range []string{"", "abc", "5x"} {
		if _, err := ParseDuration(raw); err == nil {
			t.Errorf("ParseDuration(%q) expected an error, got nil", raw)
		}
	}
}
