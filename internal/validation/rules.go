package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/portfolio-mgmt/pms-wizard/internal/format"
)

// Messages shared by the built-in suites.
const (
	MsgRequired     = "This is required information"
	MsgDateFormat   = "Date must be MM/DD/YYYY"
	MsgNotInFuture  = "Date must be today or earlier"
	MsgNotInPast    = "Date must be in the future"
	MsgAmountNeeded = "Must be greater than 0"
)

var (
	validate = validator.New()

	// Zero-padded month and day, four digit year.
	datePattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/[0-9]{4}$`)
)

// Check reports whether value passes. now is the suite clock at the start
// of the Validate call.
type Check func(value any, now time.Time) bool

// Present fails for nil, blank strings, zero or negative numbers, empty
// maps and slices, and zero structs.
func Present() Check {
	return func(value any, _ time.Time) bool {
		return IsPresent(value)
	}
}

// IsPresent implements the presence semantics of Present.
func IsPresent(value any) bool {
	if value == nil {
		return false
	}
	if d, ok := value.(decimal.Decimal); ok {
		return d.IsPositive()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return IsPresent(rv.Elem().Interface())
	case reflect.String:
		return validate.Var(strings.TrimSpace(rv.String()), "required") == nil
	case reflect.Map, reflect.Slice, reflect.Array:
		return validate.Var(value, "gt=0") == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return validate.Var(value, "gt=0") == nil
	case reflect.Struct:
		return !rv.IsZero()
	default:
		return validate.Var(value, "required") == nil
	}
}

// DateFormat requires a zero-padded MM/DD/YYYY calendar date. Missing values
// pass; pair it with Present when the field is required.
func DateFormat() Check {
	return func(value any, _ time.Time) bool {
		if !IsPresent(value) {
			return true
		}
		s, ok := value.(string)
		if !ok || !datePattern.MatchString(s) {
			return false
		}
		_, err := format.ParseDate(s)
		return err == nil
	}
}

// NotInFuture fails for dates after the current day. Missing or malformed
// values pass.
func NotInFuture() Check {
	return func(value any, now time.Time) bool {
		d, ok := dateValue(value)
		if !ok {
			return true
		}
		return !d.After(today(now))
	}
}

// NotInPast fails for dates before the current day. Missing or malformed
// values pass.
func NotInPast() Check {
	return func(value any, now time.Time) bool {
		d, ok := dateValue(value)
		if !ok {
			return true
		}
		return !d.Before(today(now))
	}
}

func dateValue(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return today(v), !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return today(*v), true
	case string:
		if !datePattern.MatchString(v) {
			return time.Time{}, false
		}
		t, err := format.ParseDate(v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
