package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBillingValue parses a billing amount as it appears in client
// spreadsheets: optional currency symbol, thousands separators, and either
// comma or dot as the decimal separator ("$1.234.567,89", "1,234,567.89",
// "1234,56"). Returns an error for anything that is not a number; callers
// default to zero and record a warning.
func ParseBillingValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("$", "", "COP", "", "USD", "", " ", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the rightmost one is the decimal separator.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			// Repeated commas can only be thousands separators.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid billing value %q", raw)
	}
	return v, nil
}
