package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

const CodeValidationFailed = "VALIDATION_FAILED"

// ValidateSchema runs struct-tag validation on schema and translates every
// failed rule into a human readable message keyed by field name.
func ValidateSchema(schema any) error {
	err := getValidator().Struct(schema)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errx.New(
			fmt.Sprintf("Unknown validation error: %s", err.Error()),
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
		)
	}

	fields := make(errx.M, len(vErrs))
	for _, fe := range vErrs {
		fields[fe.Field()] = describeRule(fe)
	}

	return errx.New(
		"Validation failed. See fields for details.",
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
		errx.WithFields(fields),
	)
}

// staticRuleDescs covers tags whose message needs no parameter.
var staticRuleDescs = map[string]string{ //nolint:gochecknoglobals // static lookup
	"required":  "This field is required",
	"email":     "Invalid email format",
	"alpha":     "Must contain only alphabetic characters",
	"alphanum":  "Must contain only alphanumeric characters",
	"numeric":   "Must be a valid number",
	"url":       "Must be a valid URL",
	"uri":       "Must be a valid URI",
	"uuid":      "Must be a valid UUID",
	"uuid4":     "Must be a valid UUID v4",
	"uuid5":     "Must be a valid UUID v5",
	"json":      "Must be valid JSON",
	"base64":    "Must be valid base64",
	"jwt":       "Must be a valid JWT token",
	"hostname":  "Must be a valid hostname",
	"fqdn":      "Must be a valid fully qualified domain name",
	"ipv4":      "Must be a valid IPv4 address",
	"ipv6":      "Must be a valid IPv6 address",
	"ip":        "Must be a valid IP address",
	"mac":       "Must be a valid MAC address",
	"latitude":  "Must be a valid latitude",
	"longitude": "Must be a valid longitude",
}

func describeRule(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()

	if desc, ok := staticRuleDescs[tag]; ok {
		return desc
	}

	switch tag {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "len":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be exactly %s characters", param)
		}
		return fmt.Sprintf("Must have exactly %s items", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "gt":
		return fmt.Sprintf("Must be greater than %s", param)
	case "lt":
		return fmt.Sprintf("Must be less than %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "containsany":
		return fmt.Sprintf("Must contain at least one of: %s", param)
	case "excludes":
		return fmt.Sprintf("Must not contain: %s", param)
	case "excludesall":
		return fmt.Sprintf("Must not contain any of: %s", param)
	case "startswith":
		return fmt.Sprintf("Must start with: %s", param)
	case "endswith":
		return fmt.Sprintf("Must end with: %s", param)
	case "datetime":
		return fmt.Sprintf("Must be a valid datetime in format: %s", param)
	case "eqfield":
		return fmt.Sprintf("Must be equal to %s", param)
	case "nefield":
		return fmt.Sprintf("Must not be equal to %s", param)
	case "gtfield":
		return fmt.Sprintf("Must be greater than %s", param)
	case "ltfield":
		return fmt.Sprintf("Must be less than %s", param)
	}

	return fmt.Sprintf("Failed validation: %s", tag)
}
