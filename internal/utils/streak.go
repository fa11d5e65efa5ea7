package utils

import "sort"

// ConsecutiveDayStreak counts the run of qualifying days that ends at today or
// yesterday. Dates are walked newest first; each one must be 0 or 1 days
// before the previous cursor, and the first larger gap ends the walk. Dates
// after today are ignored.
func ConsecutiveDayStreak(dates []string, today string) int {
	sorted := uniqueSorted(dates)
	streak := 0
	cursor := today
	for i := len(sorted) - 1; i >= 0; i-- {
		diff, err := DaysBetween(sorted[i], cursor)
		if err != nil {
			continue
		}
		if diff < 0 {
			continue
		}
		if diff > 1 {
			break
		}
		streak++
		cursor = sorted[i]
	}
	return streak
}

// LongestRun returns the longest run of consecutive calendar days in dates.
func LongestRun(dates []string) int {
	sorted := uniqueSorted(dates)
	longest, run := 0, 0
	prev := ""
	for _, d := range sorted {
		if prev != "" {
			if diff, err := DaysBetween(prev, d); err == nil && diff == 1 {
				run++
			} else {
				run = 1
			}
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return longest
}

// uniqueSorted returns the distinct dates in ascending order. YYYY-MM-DD sorts lexically.
func uniqueSorted(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
