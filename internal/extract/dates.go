// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"time"
)

// isoDate is the canonical output layout for recognized dates.
const isoDate = "2006-01-02"

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	"January 2 2006", // full month name
	"Jan 2 2006",     // abbreviated month name
	"1/2/2006",       // numeric month/day/year
}

// NormalizeDate converts a statement date to YYYY-MM-DD. It reports true when
// one of the known layouts matched. Otherwise it returns s unchanged and
// false, so callers can keep the raw text.
func NormalizeDate(s string) (string, bool) {
	cleaned := strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
	if cleaned == "" {
		return s, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(isoDate), true
		}
	}
	return s, false
}
