package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/document"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
	"loan-backoffice/internal/domain/user"
)

// Reusable error payload
type FieldError = apperr.FieldError

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	rePasswordChars = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
	reLower         = regexp.MustCompile(`[a-z]`)
	reUpper         = regexp.MustCompile(`[A-Z]`)
	reDigit         = regexp.MustCompile(`\d`)
	reSpecial       = regexp.MustCompile(`[@$!%*?&]`)
)

const dateLayout = "2006-01-02"

type CustomValidator struct{ v *validator.Validate }

// fieldDecimal reads a validated field as a decimal. Decimal fields reach
// validators as strings through the custom type func.
func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(f.String())
		return d, err == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(f.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromUint64(f.Uint()), true
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(f.Float()), true
	}
	return decimal.Zero, false
}

func strongPassword(s string) bool {
	return rePasswordChars.MatchString(s) &&
		reLower.MatchString(s) && reUpper.MatchString(s) &&
		reDigit.MatchString(s) && reSpecial.MatchString(s)
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// non-negative with at most two decimal places
	_ = v.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		d, ok := fieldDecimal(fl)
		return ok && !d.IsNegative() && d.Equal(d.Round(2))
	})
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		d, ok := fieldDecimal(fl)
		return ok && d.IsPositive()
	})
	_ = v.RegisterValidation("percent", func(fl validator.FieldLevel) bool {
		d, ok := fieldDecimal(fl)
		return ok && !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(100))
	})
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		return loan.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("paymentstatus", func(fl validator.FieldLevel) bool {
		return payment.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return user.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("userstatus", func(fl validator.FieldLevel) bool {
		return user.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		return document.Type(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("verdict", func(fl validator.FieldLevel) bool {
		return document.VerificationStatus(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

// Validate returns an *apperr.Error carrying the field details on failure.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.v.Struct(i); err != nil {
		return apperr.InvalidFields(ToFieldErrors(err))
	}
	return nil
}

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email"})
		case "decimal2":
			out = append(out, FieldError{Field: field, Message: "must be a non-negative amount with at most 2 decimal places"})
		case "positive":
			out = append(out, FieldError{Field: field, Message: "must be greater than 0"})
		case "percent":
			out = append(out, FieldError{Field: field, Message: "must be between 0 and 100"})
		case "strongpwd":
			out = append(out, FieldError{Field: field, Message: "must be at least 8 characters with upper and lower case letters, a digit and one of @$!%*?&"})
		case "isodate":
			out = append(out, FieldError{Field: field, Message: "must be a date (YYYY-MM-DD) or RFC3339 timestamp"})
		case "loanstatus", "paymentstatus", "userstatus", "verdict":
			out = append(out, FieldError{Field: field, Message: "is not a valid status"})
		case "role":
			out = append(out, FieldError{Field: field, Message: "is not a valid role"})
		case "doctype":
			out = append(out, FieldError{Field: field, Message: "is not a valid document type"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " long"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " long"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
