package validate

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/gnames/gnmodel/pkg/schema"
)

// Built-in rule constructors. Message formats follow the upstream
// document-modeling library they replace.

// Min requires a numeric value of at least min.
func Min(min float64) schema.Validator {
	return schema.Validator{
		Valid: func(value any, _ schema.Values) bool {
			f, ok := asFloat(value)
			return ok && f >= min
		},
		Message: fmt.Sprintf(
			"Path `{PATH}` ({VALUE}) is less than minimum allowed value (%v).",
			min,
		),
	}
}

// Max requires a numeric value of at most max.
func Max(max float64) schema.Validator {
	return schema.Validator{
		Valid: func(value any, _ schema.Values) bool {
			f, ok := asFloat(value)
			return ok && f <= max
		},
		Message: fmt.Sprintf(
			"Path `{PATH}` ({VALUE}) is more than maximum allowed value (%v).",
			max,
		),
	}
}

// MinLength requires a string of at least n runes.
func MinLength(n int) schema.Validator {
	return schema.Validator{
		Valid: func(value any, _ schema.Values) bool {
			s, ok := value.(string)
			return ok && utf8.RuneCountInString(s) >= n
		},
		Message: fmt.Sprintf(
			"Path `{PATH}` (`{VALUE}`) is shorter than the minimum allowed "+
				"length (%d).",
			n,
		),
	}
}

// MaxLength requires a string of at most n runes.
func MaxLength(n int) schema.Validator {
	return schema.Validator{
		Valid: func(value any, _ schema.Values) bool {
			s, ok := value.(string)
			return ok && utf8.RuneCountInString(s) <= n
		},
		Message: fmt.Sprintf(
			"Path `{PATH}` (`{VALUE}`) is longer than the maximum allowed "+
				"length (%d).",
			n,
		),
	}
}

// Enum requires a string from the given set.
func Enum(values ...string) schema.Validator {
	allowed := slices.Clone(values)
	return schema.Validator{
		Valid: func(value any, _ schema.Values) bool {
			s, ok := value.(string)
			return ok && slices.Contains(allowed, s)
		},
		Message: "`{VALUE}` is not a valid enum value for path `{PATH}`.",
	}
}

// Match requires a string matching the regular expression.
func Match(re *regexp.Regexp) schema.Validator {
	return schema.Validator{
		Valid: func(value any, _ schema.Values) bool {
			s, ok := value.(string)
			return ok && re.MatchString(s)
		},
		Message: "Path `{PATH}` is invalid ({VALUE}).",
	}
}

// asFloat widens values produced by coercion or literal defaults.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
