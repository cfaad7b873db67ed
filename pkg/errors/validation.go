package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/matzehuels/cardsheet/pkg/grid"
)

// maxIDLength bounds sheet, card and layer identifiers.
const maxIDLength = 256

// ValidateSheetID rejects empty or malformed sheet identifiers.
func ValidateSheetID(id string) error {
	if err := validateID(id); err != "" {
		return New(ErrCodeInvalidSheet, "sheet id %s", err)
	}
	return nil
}

// ValidateCardID rejects malformed card identifiers. Empty ids are rejected
// too; callers that generate ids must do so before validating.
func ValidateCardID(id string) error {
	if err := validateID(id); err != "" {
		return New(ErrCodeInvalidCard, "card id %s", err)
	}
	return nil
}

// ValidateLayer rejects layers without an identity.
func ValidateLayer(l grid.Layer) error {
	if err := validateID(l.ID); err != "" {
		return New(ErrCodeInvalidLayer, "layer id %s", err)
	}
	return nil
}

// ValidateDirection accepts the eight single-cell steps. Zero vectors and
// components outside {-1, 0, 1} are rejected.
func ValidateDirection(d grid.Point) error {
	if d.IsZero() {
		return New(ErrCodeInvalidDirection, "direction %s has zero magnitude", d)
	}
	if d.Unit() != d {
		return New(ErrCodeInvalidDirection, "direction %s must step one cell at a time", d)
	}
	return nil
}

// ValidateDistance rejects shift distances that are not positive or do not
// fit a grid coordinate.
func ValidateDistance(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidArgument, "distance must be positive, got %d", n)
	}
	if n > math.MaxInt32 {
		return New(ErrCodeInvalidArgument, "distance %d exceeds %d", n, math.MaxInt32)
	}
	return nil
}

// validateID returns a description of what is wrong with id, or "" when valid.
func validateID(id string) string {
	if id == "" {
		return "cannot be empty"
	}
	if len(id) > maxIDLength {
		return "too long (max 256 characters)"
	}
	if strings.TrimSpace(id) != id {
		return "cannot have leading or trailing whitespace"
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return "contains invalid control characters"
		}
	}
	return ""
}
