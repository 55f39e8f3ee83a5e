package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gamepulse/dashboard/internal/models"
)

var (
	yearPattern   = regexp.MustCompile(`(\d{4})`)
	numberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// Layouts tried, in order, when a release date column holds free-form text.
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2006",
	"January 2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
}

func isMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "nat", "null", "none", "<na>":
		return true
	}
	return false
}

// parseList accepts "['A', 'B']" style literals and ",", ";" or "|" separated text.
func parseList(raw string) []string {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return []string{}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return splitQuoted(s[1 : len(s)-1])
	}
	for _, sep := range []string{",", ";", "|"} {
		if strings.Contains(s, sep) {
			out := []string{}
			for _, p := range strings.Split(s, sep) {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		}
	}
	return []string{s}
}

// splitQuoted splits the inside of a list literal on commas outside quotes. A quote
// only opens at the start of an item and only closes before a comma or the end, so
// apostrophes inside items ("Shoot 'Em Up") survive.
func splitQuoted(s string) []string {
	out := []string{}
	var cur strings.Builder
	var quote rune
	flush := func() {
		item := strings.TrimSpace(cur.String())
		if len(item) >= 2 && (item[0] == '\'' || item[0] == '"') && item[len(item)-1] == item[0] {
			item = item[1 : len(item)-1]
		}
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
		cur.Reset()
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case quote != 0:
			if r == quote && closesItem(rs[i+1:]) {
				quote = 0
			}
			cur.WriteRune(r)
		case (r == '\'' || r == '"') && strings.TrimSpace(cur.String()) == "":
			quote = r
			cur.WriteRune(r)
		case r == ',':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// closesItem reports whether only blanks stand between here and the next comma or the end.
func closesItem(rest []rune) bool {
	for _, r := range rest {
		switch r {
		case ' ', '\t':
			continue
		case ',':
			return true
		default:
			return false
		}
	}
	return true
}

// parseOwners turns "0 - 20000" into {0, 10000, 20000}.
func parseOwners(raw string) (*models.OwnersRange, bool) {
	if isMissing(raw) {
		return nil, false
	}
	parts := strings.Split(strings.ReplaceAll(raw, ",", ""), "-")
	lo, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return nil, false
	}
	hi := lo
	if len(parts) > 1 {
		hi, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, false
		}
	}
	if lo < 0 || hi < 0 {
		return nil, false
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return &models.OwnersRange{Min: lo, Mid: lo + (hi-lo)/2, Max: hi}, true
}

// extractYear finds the first four-digit number in s and accepts it when it lies in 1970..2100.
func extractYear(s string) (int, bool) {
	if isMissing(s) {
		return 0, false
	}
	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	y, _ := strconv.Atoi(m[1])
	if y < 1970 || y > 2100 {
		return 0, false
	}
	return y, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// yearFromDate parses a full date and falls back to a bare year inside the text.
func yearFromDate(s string) (int, bool) {
	if t, ok := parseDate(s); ok {
		return t.Year(), true
	}
	return extractYear(s)
}

// yearFromNumber reads a column that holds the year itself ("2019" or "2019.0").
func yearFromNumber(s string) (int, bool) {
	f, ok := parseFloat(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

var boolValues = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true, "t": true,
	"false": false, "0": false, "no": false, "n": false, "f": false,
}

// parseBool maps the usual truthy/falsy spellings; anything else is false.
func parseBool(s string) bool {
	return boolValues[strings.ToLower(strings.TrimSpace(s))]
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return 0, false
	}
	clean := strings.ReplaceAll(s, ",", "")
	if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return n, true
	}
	f, ok := parseFloat(clean)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// coerceUserScore maps the score spellings found in the wild onto a 0–10 scale:
// "7.8/10", "76%", "7,8", "0.78" and "78" all become 7.8 (or 7.6 for 76%).
func coerceUserScore(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if !strings.Contains(s, "/10") {
		switch {
		case val <= 1:
			val *= 10
		case val > 10 && val <= 100:
			val /= 10
		}
	}
	if val < 0 || val > 10 {
		return 0, false
	}
	return val, true
}
