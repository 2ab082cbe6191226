package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ageRe = regexp.MustCompile(`(\d+)\s*([dh])`)
	dayRe = regexp.MustCompile(`(\d+)`)
)

var monthAbbrs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var freshWords = []string{"today", "new", "0d", "0h", "just posted"}

// ParseDate turns the messy date strings the sources emit into a UTC
// instant. Accepted forms: "today"/"new"/"just posted"/"0d"/"0h", "Nd"/"Nh"
// ages, month abbreviation plus day ("Feb 22", rolled back a year when more
// than a day in the future), an ISO-8601 date prefix, and Unix epoch
// integers (seconds or milliseconds, split at 1e10). ok is false when none
// of those match.
func ParseDate(dateStr string, now time.Time) (t time.Time, ok bool) {
	dl := strings.ToLower(strings.TrimSpace(dateStr))
	if dl == "" {
		return time.Time{}, false
	}
	now = now.UTC()

	for _, w := range freshWords {
		if strings.Contains(dl, w) {
			return now, true
		}
	}

	if m := ageRe.FindStringSubmatch(dl); m != nil {
		val, _ := strconv.Atoi(m[1])
		if m[2] == "d" {
			return now.AddDate(0, 0, -val), true
		}
		return now.Add(-time.Duration(val) * time.Hour), true
	}

	for abbr, month := range monthAbbrs {
		if !strings.Contains(dl, abbr) {
			continue
		}
		m := dayRe.FindStringSubmatch(dl)
		if m == nil {
			break
		}
		day, _ := strconv.Atoi(m[1])
		if day < 1 || day > 31 {
			break
		}
		dt := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
		if dt.After(now.AddDate(0, 0, 1)) {
			dt = time.Date(now.Year()-1, month, day, 0, 0, 0, 0, time.UTC)
		}
		return dt, true
	}

	// ISO date prefix: "2026-02-13" or "2026-02-13T10:00:00Z".
	datePart, _, _ := strings.Cut(strings.TrimSpace(dateStr), "T")
	if dt, err := time.Parse("2006-01-02", datePart); err == nil {
		return dt.UTC(), true
	}

	if epoch, err := strconv.ParseInt(strings.TrimSpace(dateStr), 10, 64); err == nil && epoch > 0 {
		return ParseEpoch(epoch), true
	}

	return time.Time{}, false
}

// ParseEpoch interprets a Unix timestamp as seconds or milliseconds,
// autodetected by magnitude (>1e10 means milliseconds).
func ParseEpoch(epoch int64) time.Time {
	if epoch > 1e10 {
		return time.UnixMilli(epoch).UTC()
	}
	return time.Unix(epoch, 0).UTC()
}

// StandardizeDate reduces a raw date string to the short "Jan 02" display
// form where it can be parsed, and returns the trimmed input otherwise.
func StandardizeDate(dateStr string, now time.Time) string {
	if strings.TrimSpace(dateStr) == "" {
		return ""
	}
	if t, ok := ParseDate(dateStr, now); ok {
		return t.Format("Jan 02")
	}
	return strings.TrimSpace(dateStr)
}

// Cutoff computes the freshness boundary for a run. hoursBack below 1 is
// clamped to 1.
func Cutoff(now time.Time, hoursBack float64) time.Time {
	if hoursBack < 1 {
		hoursBack = 1
	}
	return now.UTC().Add(-time.Duration(hoursBack * float64(time.Hour)))
}

// FeedCutoff widens a run cutoff for GitHub-sourced feeds, which update
// daily rather than hourly: the effective cutoff is at least minDays old.
func FeedCutoff(cutoff, now time.Time, minDays int) time.Time {
	floor := now.UTC().AddDate(0, 0, -minDays)
	if floor.Before(cutoff) {
		return floor
	}
	return cutoff
}
