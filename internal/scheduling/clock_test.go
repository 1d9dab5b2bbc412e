package scheduling

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"9:30", 570, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseLegacyDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"2h", 120, false},
		{"1h 30m", 90, false},
		{"1h 30", 90, false},
		{"1h30m", 90, false},
		{"0h", 0, true},
		{"45m", 0, true},
		{"1h 75m", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLegacyDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLegacyDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLegacyDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	// [480,600) vs [600,660): touching endpoints are not a conflict.
	if overlaps(480, 600, 600, 660) {
		t.Error("touching windows should not overlap")
	}
	if !overlaps(480, 600, 540, 660) {
		t.Error("intersecting windows should overlap")
	}
	if !overlaps(480, 600, 500, 520) {
		t.Error("contained window should overlap")
	}
}
