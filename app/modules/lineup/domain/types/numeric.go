package lineuptypes

import (
	"math"
	"strconv"
	"strings"
)

// ToInt reads an integer stat. Float-looking values are truncated and anything
// unreadable counts as 0.
func ToInt(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, ok := parseFinite(s)
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int(f)
}

// ToFloat reads a real-valued stat, 0 when unreadable.
func ToFloat(raw string) float64 {
	return ToFloatOr(raw, 0)
}

// ToFloatOr reads a real-valued stat, def when blank or unreadable.
func ToFloatOr(raw string, def float64) float64 {
	f, ok := parseFinite(strings.TrimSpace(raw))
	if !ok {
		return def
	}
	return f
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
