package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewTimeRange_Valid(t *testing.T) {
	tr, err := NewTimeRange("0900", "1100")
	if err != nil {
		t.Fatalf("NewTimeRange failed: %v", err)
	}
	if tr.Start != "0900" || tr.End != "1100" {
		t.Errorf("unexpected range: %v", tr)
	}
}

func TestNewTimeRange_Rejects(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"inverted", "1100", "0900"},
		{"zero length", "0900", "0900"},
		{"bad hour", "2500", "2600"},
		{"bad minute", "0960", "1000"},
		{"not a time", "abcd", "1000"},
		{"colon format", "09:00", "10:00"},
		{"too short", "900", "1000"},
	}
	for _, tc := range cases {
		if _, err := NewTimeRange(tc.start, tc.end); err == nil {
			t.Errorf("%s: expected error for %s-%s", tc.name, tc.start, tc.end)
		}
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	mustRange := func(start, end string) TimeRange {
		tr, err := NewTimeRange(start, end)
		if err != nil {
			t.Fatalf("NewTimeRange(%s, %s) failed: %v", start, end, err)
		}
		return tr
	}

	cases := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"identical", mustRange("0900", "1000"), mustRange("0900", "1000"), true},
		{"partial overlap", mustRange("0900", "1100"), mustRange("1000", "1200"), true},
		{"contained", mustRange("0900", "1200"), mustRange("1000", "1100"), true},
		{"back to back", mustRange("0900", "1000"), mustRange("1000", "1100"), false},
		{"disjoint", mustRange("0900", "1000"), mustRange("1400", "1500"), false},
		{"one minute overlap", mustRange("0900", "1001"), mustRange("1000", "1100"), true},
	}
	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: a.Overlaps(b) = %v, want %v", tc.name, got, tc.want)
		}
		// Overlap must be symmetric.
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s: b.Overlaps(a) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseRecurringSchedule(t *testing.T) {
	rs, err := ParseRecurringSchedule("Monday 0900 1100")
	if err != nil {
		t.Fatalf("ParseRecurringSchedule failed: %v", err)
	}
	if rs.Day != time.Monday {
		t.Errorf("expected Monday, got %v", rs.Day)
	}
	if rs.Start != "0900" || rs.End != "1100" {
		t.Errorf("unexpected range: %v", rs.TimeRange)
	}

	abbrev, err := ParseRecurringSchedule("tue 1400 1500")
	if err != nil {
		t.Fatalf("abbreviated day failed: %v", err)
	}
	if abbrev.Day != time.Tuesday {
		t.Errorf("expected Tuesday, got %v", abbrev.Day)
	}
}

func TestParseRecurringSchedule_Rejects(t *testing.T) {
	cases := []string{
		"Funday 0900 1100",
		"Monday 0900",
		"Monday 1100 0900",
		"Monday 0900 0900",
		"0900 1100",
		"",
	}
	for _, text := range cases {
		if _, err := ParseRecurringSchedule(text); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestParseOneTimeScheduleAt(t *testing.T) {
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	withYear, err := ParseOneTimeScheduleAt("15/03/25 0900 1000", ref)
	if err != nil {
		t.Fatalf("ParseOneTimeScheduleAt failed: %v", err)
	}
	if withYear.Date != "15/03/25" {
		t.Errorf("expected 15/03/25, got %s", withYear.Date)
	}

	// A year-less date takes the reference year.
	withoutYear, err := ParseOneTimeScheduleAt("15/03 0900 1000", ref)
	if err != nil {
		t.Fatalf("year-less date failed: %v", err)
	}
	if withoutYear.Date != "15/03/25" {
		t.Errorf("expected 15/03/25, got %s", withoutYear.Date)
	}
	if withYear != withoutYear {
		t.Errorf("year-less and explicit forms should be equal after normalization")
	}
}

func TestParseOneTimeScheduleAt_Rejects(t *testing.T) {
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []string{
		"31/02/25 0900 1000", // no such day
		"29/02/25 0900 1000", // 2025 is not a leap year
		"00/01/25 0900 1000",
		"15/13/25 0900 1000",
		"15/03/2025 0900 1000", // four-digit year not accepted
		"15-03-25 0900 1000",
		"15/03/25 0900",
		"15/03/25 1000 0900",
	}
	for _, text := range cases {
		if _, err := ParseOneTimeScheduleAt(text, ref); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}

	// 29/02 is fine when the reference year is a leap year.
	leapRef := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := ParseOneTimeScheduleAt("29/02 0900 1000", leapRef); err != nil {
		t.Errorf("29/02 in a leap year should parse: %v", err)
	}
	if _, err := ParseOneTimeScheduleAt("29/02 0900 1000", ref); err == nil {
		t.Errorf("29/02 outside a leap year should be rejected")
	}
}

func TestOneTimeSchedule_Weekday(t *testing.T) {
	// 31/12/2025 is a Wednesday.
	ots, err := ParseOneTimeScheduleAt("31/12/25 0900 1000", time.Now())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ots.Weekday() != time.Wednesday {
		t.Errorf("expected Wednesday, got %v", ots.Weekday())
	}
}

func TestSchedule_Strings(t *testing.T) {
	rs, _ := ParseRecurringSchedule("Monday 0900 1100")
	if rs.String() != "Monday 0900 1100" {
		t.Errorf("unexpected recurring string: %q", rs.String())
	}
	if rs.When() != "Monday" {
		t.Errorf("unexpected When: %q", rs.When())
	}

	ots, _ := ParseOneTimeScheduleAt("15/03/25 0900 1000", time.Now())
	if ots.String() != "15/03/25 0900 1000" {
		t.Errorf("unexpected one-time string: %q", ots.String())
	}
	if ots.When() != "15/03/25" {
		t.Errorf("unexpected When: %q", ots.When())
	}
}

func TestParseWeekday_CaseInsensitive(t *testing.T) {
	for _, s := range []string{"MONDAY", "monday", "Mon", "mon"} {
		wd, err := ParseWeekday(s)
		if err != nil {
			t.Fatalf("ParseWeekday(%q) failed: %v", s, err)
		}
		if wd != time.Monday {
			t.Errorf("ParseWeekday(%q) = %v, want Monday", s, wd)
		}
	}
	if _, err := ParseWeekday("mo"); err == nil {
		t.Error("expected error for ambiguous name")
	}
}

func TestTimeRange_ValidateDecodedValue(t *testing.T) {
	// Values decoded from storage bypass the constructor; Validate must
	// catch what the constructor would have rejected.
	bad := TimeRange{Start: "1100", End: "0900"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for inverted range")
	}
	if err := (TimeRange{Start: "0900", End: "1000"}).Validate(); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	garbage := OneTimeSchedule{Date: "99/99/99", TimeRange: TimeRange{Start: "0900", End: "1000"}}
	if err := garbage.Validate(); err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("expected invalid date error, got %v", err)
	}
}
