package resources

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDurationRe  = regexp.MustCompile(`^p(?:(\d+)d)?t(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)
	unitDurationRe = regexp.MustCompile(`(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m|seconds?|secs?|s)`)
	popularityRe   = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*(?:([kmb])(?:illion)?\b)?`)
)

// maxParsedValue caps parsed counts and durations so oversized numbers never wrap negative.
const maxParsedValue = min(math.MaxInt, 1<<53)

// clampParsed converts f to an int in [0, maxParsedValue], rounding to nearest.
func clampParsed(f float64) int {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= maxParsedValue:
		return maxParsedValue
	}
	return int(f + 0.5)
}

// ParseDuration converts a human or ISO-8601 duration into seconds.
// Supported: "1h 2m 3s", "10:05", "1:02:03", "7 min", "PT4M13S". Anything else yields 0.
func ParseDuration(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "duration:"))
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "p") {
		return ParseISODuration(s)
	}
	if strings.Contains(s, ":") {
		return parseClock(s)
	}
	var total float64
	matched := false
	for _, idx := range unitDurationRe.FindAllStringSubmatchIndex(s, -1) {
		// The unit must end the word: "3 months" is not three minutes.
		if end := idx[1]; end < len(s) && isASCIILetter(s[end]) {
			continue
		}
		n, err := strconv.ParseFloat(s[idx[2]:idx[3]], 64)
		if err != nil {
			return 0
		}
		matched = true
		switch s[idx[4]] {
		case 'h':
			total += n * 3600
		case 'm':
			total += n * 60
		default:
			total += n
		}
	}
	if !matched {
		return 0
	}
	return clampParsed(total)
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// parseClock handles M:SS and H:MM:SS.
func parseClock(s string) int {
	if i := strings.IndexAny(s, " \t("); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	var total float64
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0
		}
		total = total*60 + float64(n)
	}
	return clampParsed(total)
}

// ParseISODuration converts the YouTube Data API format (PT1H2M3S, P1DT2H) into seconds.
func ParseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}
	mult := []float64{86400, 3600, 60, 1}
	var total float64
	for i, g := range m[1:] {
		if g == "" {
			continue
		}
		n, _ := strconv.ParseFloat(g, 64)
		total += n * mult[i]
	}
	return clampParsed(total)
}

// ParsePopularity converts view or star counts into an integer.
// Handles separators ("1,234"), suffixes ("2.5k", "1M", "3 billion") and trailing words ("views").
func ParsePopularity(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	m := popularityRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	switch m[2] {
	case "k":
		f *= 1e3
	case "m":
		f *= 1e6
	case "b":
		f *= 1e9
	}
	return clampParsed(f)
}

// FormatDuration renders seconds the way ParseDuration reads them back ("1h 2m 3s").
func FormatDuration(seconds int) string {
	switch {
	case seconds <= 0:
		return "unknown"
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm %ds", seconds/3600, seconds%3600/60, seconds%60)
	}
}

// FormatCount renders a popularity count compactly ("1.2M", "3.4K", "999").
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1e6, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1e3, 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(n)
	}
}
