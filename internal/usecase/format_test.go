package usecase

import (
	"testing"
	"time"
)

func TestParseDateToken_DateOnly(t *testing.T) {
	got, ok := ParseDateToken("Date(2024,0,15)")
	if !ok {
		t.Fatal("ParseDateToken() reported not ok")
	}
	if FormatDate(got) != "15/01/2024" {
		t.Fatalf("FormatDate() = %q, want %q (month index zero = January)", FormatDate(got), "15/01/2024")
	}
}

func TestParseDateToken_DateTime(t *testing.T) {
	got, ok := ParseDateToken("Date(2024,0,15,9,30,0)")
	if !ok {
		t.Fatal("ParseDateToken() reported not ok")
	}
	if FormatDateTime(got) != "15/01/2024 09:30:00" {
		t.Fatalf("FormatDateTime() = %q, want %q", FormatDateTime(got), "15/01/2024 09:30:00")
	}
}

func TestParseDateToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "15/01/2024", "Date()", "Date(2024)", "Date(2024,0)", "Date(a,b,c)", "Dates(2024,0,1)"} {
		if _, ok := ParseDateToken(raw); ok {
			t.Fatalf("ParseDateToken(%q) reported ok, want fallback to raw string", raw)
		}
	}
}

func TestDisplayDate_FallsBackToRawString(t *testing.T) {
	if got := DisplayDate("next week", false); got != "next week" {
		t.Fatalf("DisplayDate() = %q, want raw string back", got)
	}
}

func TestNormalizeMachineHours_AllFourEncodings(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"formatted passthrough", "08:30:00", "08:30:00"},
		{"date token", "Date(2024,0,1,8,30,0)", "08:30:00"},
		{"decimal hours", 8.5, "08:30:00"},
		{"native time", time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), "08:30:00"},
	}
	for _, tc := range cases {
		if got := NormalizeMachineHours(tc.in); got != tc.want {
			t.Fatalf("%s: NormalizeMachineHours(%v) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeMachineHours_FloorCascade(t *testing.T) {
	// 2.755 hours = 2h 45.3m = 2h 45m 18s.
	if got := NormalizeMachineHours(2.755); got != "02:45:17" && got != "02:45:18" {
		t.Fatalf("NormalizeMachineHours(2.755) = %q, want 02:45:18 (floor cascade)", got)
	}
}

func TestNormalizeMachineHours_UnknownInputUnmodified(t *testing.T) {
	if got := NormalizeMachineHours("about nine hours"); got != "about nine hours" {
		t.Fatalf("NormalizeMachineHours() = %q, want input unmodified", got)
	}
}

func TestNormalizeMachineHours_Nil(t *testing.T) {
	if got := NormalizeMachineHours(nil); got != "" {
		t.Fatalf("NormalizeMachineHours(nil) = %q, want empty", got)
	}
}
