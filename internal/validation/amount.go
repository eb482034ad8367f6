package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FieldErrors maps a request field to its problem.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// MaxAmount bounds every calculator input.
const MaxAmount = 1_000_000

// Amounts checks that every named number is finite, not negative and at
// most MaxAmount. It returns nil when all pass.
func Amounts(fields map[string]float64) error {
	errs := FieldErrors{}
	for name, v := range fields {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs[name] = "must be a number"
		case v < 0:
			errs[name] = "must not be negative"
		case v > MaxAmount:
			errs[name] = fmt.Sprintf("must be at most %g", float64(MaxAmount))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Positive requires v > 0 and at most max.
func Positive(name string, v, max float64) error {
	if math.IsNaN(v) || v <= 0 {
		return FieldErrors{name: "must be greater than zero"}
	}
	if v > max {
		return FieldErrors{name: fmt.Sprintf("must be at most %g", max)}
	}
	return nil
}
