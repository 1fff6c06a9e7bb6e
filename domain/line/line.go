// Package line converts between operator-typed building line text such as
// "1~4" or "1~2, 3~7" and sets of line numbers.
//
// A building line is a vertical stairwell or elevator grouping numbered
// 1 through 99. Invalid input is never an error here: tokens that do not
// parse are dropped, and Parse reports which ones were dropped so the caller
// can decide whether to show a validation message.
//
// All functions are pure and safe for concurrent use.
package line

import (
	"slices"
	"strconv"
	"strings"
)

// Bounds for a line number.
const (
	MinLine = 1
	MaxLine = 99
)

// Range separators. RangeSeparator wins when a token contains both.
const (
	RangeSeparator    = "~"
	AltRangeSeparator = "-"
	GroupSeparator    = ","
)

// Result is the outcome of parsing comma-separated line text.
type Result struct {
	// Groups holds one ascending sequence per accepted token, in input order.
	Groups [][]int
	// Rejected holds the trimmed tokens that produced no group.
	Rejected []string
}

// Empty reports whether no group was accepted.
func (r Result) Empty() bool {
	return len(r.Groups) == 0
}

// Parse splits text on commas and parses every token with ParseRange.
// Blank tokens are skipped without being reported.
func Parse(text string) Result {
	var result Result
	for _, part := range strings.Split(text, GroupSeparator) {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		group := ParseRange(token)
		if len(group) == 0 {
			result.Rejected = append(result.Rejected, token)
			continue
		}
		result.Groups = append(result.Groups, group)
	}
	return result
}

// ParseGroups parses comma-separated tokens into independent groups.
// "1~2, 3~7" yields [[1 2] [3 4 5 6 7]]. Tokens that fail to parse are
// dropped; empty or blank text yields no groups.
func ParseGroups(text string) [][]int {
	return Parse(text).Groups
}

// ParseRange parses a single token: either "start~end", "start-end" or a
// bare number. It returns nil when the token is not a valid range within
// [MinLine, MaxLine] or when start > end.
func ParseRange(token string) []int {
	if sep, ok := separator(token); ok {
		parts := strings.Split(token, sep)
		if len(parts) != 2 {
			return nil
		}
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil
		}
		if start > end || start < MinLine || end > MaxLine {
			return nil
		}
		lines := make([]int, 0, end-start+1)
		for n := start; n <= end; n++ {
			lines = append(lines, n)
		}
		return lines
	}

	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || !inBounds(n) {
		return nil
	}
	return []int{n}
}

// ParseSet parses text into one merged, deduplicated, ascending set.
//
// Text containing a range separator is handed whole to ParseRange, so only a
// single range is recognised. Otherwise the text is read as a comma-separated
// list of bare numbers. This differs from ParseGroups, which keeps every
// comma-delimited token as its own group.
func ParseSet(text string) []int {
	text = strings.TrimSpace(text)
	if _, ok := separator(text); ok {
		return ParseRange(text)
	}

	var lines []int
	for _, part := range strings.Split(text, GroupSeparator) {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !inBounds(n) {
			continue
		}
		lines = append(lines, n)
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}

// Format renders lines for display. A strictly consecutive ascending run of
// two or more numbers renders as "first~last"; anything else renders as the
// sorted numbers joined by commas. Duplicates are kept in the comma form.
// The input slice is not modified.
func Format(lines []int) string {
	if len(lines) == 0 {
		return ""
	}

	sorted := slices.Clone(lines)
	slices.Sort(sorted)

	if len(sorted) >= 2 && consecutive(sorted) {
		return strconv.Itoa(sorted[0]) + RangeSeparator + strconv.Itoa(sorted[len(sorted)-1])
	}

	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, GroupSeparator)
}

// Valid reports whether lines is non-empty and every element lies within
// [MinLine, MaxLine]. Order and duplicates are not checked.
func Valid(lines []int) bool {
	if len(lines) == 0 {
		return false
	}
	for _, n := range lines {
		if !inBounds(n) {
			return false
		}
	}
	return true
}

// Overlap returns the ascending distinct numbers present in both a and b.
func Overlap(a, b []int) []int {
	seen := make(map[int]struct{}, len(a))
	for _, n := range a {
		seen[n] = struct{}{}
	}
	var shared []int
	for _, n := range b {
		if _, ok := seen[n]; ok {
			shared = append(shared, n)
		}
	}
	slices.Sort(shared)
	return slices.Compact(shared)
}

func separator(token string) (string, bool) {
	switch {
	case strings.Contains(token, RangeSeparator):
		return RangeSeparator, true
	case strings.Contains(token, AltRangeSeparator):
		return AltRangeSeparator, true
	default:
		return "", false
	}
}

func consecutive(sorted []int) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

func inBounds(n int) bool {
	return n >= MinLine && n <= MaxLine
}
