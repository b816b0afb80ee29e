// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
)

var (
	taskTypePattern = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
)

// JSONSchema describes the expected shape of worker input variables.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Default     interface{}         `json:"default,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// ValidateInput checks the unmarshaled job variables against a schema and
// collects every violation rather than stopping at the first.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	var errs []ValidationError

	for _, name := range schema.Required {
		if _, ok := input[name]; !ok {
			errs = append(errs, ValidationError{
				Field:   name,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	for name, value := range input {
		prop, ok := schema.Properties[name]
		if !ok {
			if !schema.AdditionalProperties {
				errs = append(errs, ValidationError{
					Field:   name,
					Message: "field not allowed in schema",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}
		errs = append(errs, checkProperty(name, value, prop)...)
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func checkProperty(field string, value interface{}, prop Property) []ValidationError {
	if err := checkType(value, prop.Type); err != nil {
		return []ValidationError{{Field: field, Message: err.Error(), Code: "INVALID_TYPE"}}
	}

	var errs []ValidationError
	switch v := value.(type) {
	case string:
		errs = append(errs, checkString(field, v, prop)...)
	case float64:
		errs = append(errs, checkNumber(field, v, prop)...)
	case []interface{}:
		if prop.Items != nil {
			for i, item := range v {
				errs = append(errs, checkProperty(fmt.Sprintf("%s[%d]", field, i), item, *prop.Items)...)
			}
		}
	case map[string]interface{}:
		if prop.Properties != nil {
			nested := ValidateInput(v, JSONSchema{
				Type:                 "object",
				Properties:           prop.Properties,
				Required:             prop.Required,
				AdditionalProperties: true,
			})
			for _, ne := range nested.Errors {
				errs = append(errs, ValidationError{
					Field:   field + "." + ne.Field,
					Message: ne.Message,
					Code:    ne.Code,
				})
			}
		}
	}
	return errs
}

func checkString(field, value string, prop Property) []ValidationError {
	var errs []ValidationError
	if prop.MinLength != nil && len(value) < *prop.MinLength {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("value must be at least %d characters", *prop.MinLength),
			Code:    "MIN_LENGTH_VIOLATION",
		})
	}
	if prop.MaxLength != nil && len(value) > *prop.MaxLength {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("value must be at most %d characters", *prop.MaxLength),
			Code:    "MAX_LENGTH_VIOLATION",
		})
	}
	if prop.Pattern != nil {
		matched, err := regexp.MatchString(*prop.Pattern, value)
		if err != nil || !matched {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("value must match pattern %s", *prop.Pattern),
				Code:    "PATTERN_MISMATCH",
			})
		}
	}
	if len(prop.Enum) > 0 && !containsString(prop.Enum, value) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("value must be one of %v", prop.Enum),
			Code:    "INVALID_ENUM_VALUE",
		})
	}
	return errs
}

func checkNumber(field string, value float64, prop Property) []ValidationError {
	var errs []ValidationError
	if prop.Minimum != nil && value < *prop.Minimum {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("value must be >= %f", *prop.Minimum),
			Code:    "MINIMUM_VIOLATION",
		})
	}
	if prop.Maximum != nil && value > *prop.Maximum {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("value must be <= %f", *prop.Maximum),
			Code:    "MAXIMUM_VIOLATION",
		})
	}
	return errs
}

func checkType(value interface{}, expected string) error {
	var ok bool
	switch expected {
	case "string":
		_, ok = value.(string)
	case "number":
		switch value.(type) {
		case float64, int, int32, int64:
			ok = true
		}
	case "integer":
		switch value.(type) {
		case int, int32, int64:
			ok = true
		}
	case "boolean":
		_, ok = value.(bool)
	case "object":
		_, ok = value.(map[string]interface{})
	case "array":
		_, ok = value.([]interface{})
	case "null":
		ok = value == nil
	default:
		ok = true
	}
	if !ok {
		return fmt.Errorf("expected %s, got %T", expected, value)
	}
	return nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// ValidateTaskType checks a registry activity ID is lowercase kebab-case,
// matching the naming used by the worker fleet (e.g. evaluate-profile).
func ValidateTaskType(taskType string) error {
	if !taskTypePattern.MatchString(taskType) {
		return fmt.Errorf("task type must be lowercase kebab-case (e.g. evaluate-profile), got %q", taskType)
	}
	return nil
}

// ValidateEmail reports whether the address looks like a deliverable email.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone accepts digits with optional leading + and common separators.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
