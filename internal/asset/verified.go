package asset

import (
	"fmt"
	"strings"
)

// NormalizeVerified collapses every representation of the "verified" flag seen from the
// backend and from spreadsheets into a bool:
//
//	bool                         -> itself
//	nil or blank string          -> verifiedBy is non-blank
//	"no" "false" "0"             -> false (case-insensitive, trimmed)
//	"yes" "true" "1"             -> true
//	numbers                      -> non-zero
//	any other non-blank value    -> true
func NormalizeVerified(v any, verifiedBy any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case nil:
		return !blank(verifiedBy)
	case string:
		if strings.TrimSpace(x) == "" {
			return !blank(verifiedBy)
		}
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "no", "false", "0":
			return false
		case "yes", "true", "1":
			return true
		}
		return true
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	}
	return true
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	return strings.TrimSpace(fmt.Sprint(v)) == ""
}
