package resources

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10:05", 605},
		{"1:02:03", 3723},
		{"7 min", 420},
		{"", 0},
		{"garbage", 0},
		{"1h 2m 3s", 3723},
		{"12m 30s", 750},
		{"45s", 45},
		{"2 hours", 7200},
		{"PT4M13S", 253},
		{"PT1H", 3600},
		{"Duration: 3:00", 180},
		{"10:xx", 0},
		{"1:2:3:4", 0},
		{"1h2m3s", 3723},
		{"3 months ago", 0},
		{"5 steps", 0},
		{"9999999999999999h", maxParsedValue},
		{"99999999999:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDuration(tt.in); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"P1DT1S", 86401},
		{"P99999999999999999DT1S", maxParsedValue},
		{"PT", 0},
		{"4M13S", 0},
	}
	for _, tt := range tests {
		if got := ParseISODuration(tt.in); got != tt.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParsePopularity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2.5k", 2500},
		{"1m", 1000000},
		{"1,234", 1234},
		{"", 0},
		{"1.2M views", 1200000},
		{"15 views", 15},
		{"842 stars", 842},
		{"3 billion", 3000000000},
		{"2 branches", 2},
		{"none", 0},
		{"99999999999999999999", maxParsedValue},
		{"9999999999999b views", maxParsedValue},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParsePopularity(tt.in); got != tt.want {
				t.Errorf("ParsePopularity(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatDurationRoundTrip(t *testing.T) {
	for _, secs := range []int{45, 605, 3723, 7200} {
		if got := ParseDuration(FormatDuration(secs)); got != secs {
			t.Errorf("ParseDuration(FormatDuration(%d)) = %d", secs, got)
		}
	}
	if got := FormatDuration(0); got != "unknown" {
		t.Errorf("FormatDuration(0) = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{999, "999"},
		{1234, "1.2K"},
		{2500000, "2.5M"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
