package cli

import (
	"errors"

	"github.com/aidanlsb/sitedates/internal/frontmatter"
	"github.com/aidanlsb/sitedates/internal/isodate"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Site errors
	ErrSiteNotFound  = "SITE_NOT_FOUND"
	ErrConfigInvalid = "CONFIG_INVALID"

	// Date errors
	ErrInvalidDate      = "INVALID_DATE"
	ErrInvalidMonth     = "INVALID_MONTH"
	ErrInvalidDay       = "INVALID_DAY"
	ErrFractionalField  = "FRACTIONAL_FIELD"
	ErrFrontMatterError = "FRONT_MATTER_INVALID"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnPassthroughMissing = "PASSTHROUGH_MISSING"
	WarnInvalidDate        = "INVALID_DATE"
	WarnDocumentSkipped    = "DOCUMENT_SKIPPED"
	WarnIndexRebuilt       = "INDEX_REBUILT"
)

// dateErrorCode maps a date parsing failure to its most specific code.
func dateErrorCode(err error) string {
	switch {
	case errors.Is(err, isodate.ErrInvalidMonth):
		return ErrInvalidMonth
	case errors.Is(err, isodate.ErrInvalidDay):
		return ErrInvalidDay
	case errors.Is(err, isodate.ErrFractionalField):
		return ErrFractionalField
	case errors.Is(err, frontmatter.ErrNotDateString):
		return ErrFrontMatterError
	default:
		return ErrInvalidDate
	}
}
