package timeslot

import "testing"

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	if err != nil {
		t.Fatalf("NewInterval(%s, %s): %v", start, end, err)
	}
	return iv
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input     string
		want      Clock
		wantError bool
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 9*60 + 30},
		{input: "9:30", want: 9*60 + 30},
		{input: "23:59", want: 23*60 + 59},
		{input: "24:00", wantError: true},
		{input: "09:60", wantError: true},
		{input: "-1:00", wantError: true},
		{input: "nine", wantError: true},
		{input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockString(t *testing.T) {
	c, err := ParseClock("08:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.String() != "08:05" {
		t.Errorf("String() = %q, want %q", c.String(), "08:05")
	}
}

func TestNewInterval_RejectsInvertedBounds(t *testing.T) {
	if _, err := NewInterval("10:00", "10:00"); err == nil {
		t.Error("expected error for zero-length interval")
	}
	if _, err := NewInterval("11:00", "10:00"); err == nil {
		t.Error("expected error for inverted interval")
	}
}

func TestOverlaps_BoundaryExclusivity(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "touching endpoints are free",
			a:    mustInterval(t, "09:00", "10:00"),
			b:    mustInterval(t, "10:00", "11:00"),
			want: false,
		},
		{
			name: "identical intervals overlap",
			a:    mustInterval(t, "09:00", "10:00"),
			b:    mustInterval(t, "09:00", "10:00"),
			want: true,
		},
		{
			name: "containment overlaps",
			a:    mustInterval(t, "09:00", "11:00"),
			b:    mustInterval(t, "10:00", "11:00"),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustInterval(t, "09:00", "10:30"),
			b:    mustInterval(t, "10:00", "11:00"),
			want: true,
		},
		{
			name: "disjoint intervals",
			a:    mustInterval(t, "09:00", "10:00"),
			b:    mustInterval(t, "12:00", "13:00"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%s.Overlaps(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%s.Overlaps(%s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	hours := mustInterval(t, "08:00", "22:00")

	if !mustInterval(t, "08:00", "22:00").Within(hours) {
		t.Error("full operating hours should nest within themselves")
	}
	if !mustInterval(t, "09:00", "10:30").Within(hours) {
		t.Error("interior interval should nest")
	}
	if mustInterval(t, "07:30", "09:00").Within(hours) {
		t.Error("interval starting before open should not nest")
	}
	if mustInterval(t, "21:00", "22:30").Within(hours) {
		t.Error("interval ending after close should not nest")
	}
}

func TestBillableHours(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  int
	}{
		{"09:00", "10:00", 1},
		{"09:00", "10:01", 2},
		{"09:00", "10:30", 2},
		{"09:00", "11:00", 2},
		{"09:00", "09:01", 1},
	}

	for _, tt := range tests {
		iv := mustInterval(t, tt.start, tt.end)
		if got := iv.BillableHours(); got != tt.want {
			t.Errorf("%s.BillableHours() = %d, want %d", iv, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Format(DateLayout) != "2024-06-01" {
		t.Errorf("round trip = %s, want 2024-06-01", d.Format(DateLayout))
	}

	if _, err := ParseDate("01/06/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
