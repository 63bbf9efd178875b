package handler

import (
    "errors"
    "fmt"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo.  Install it with
// e.Validator = handler.NewRequestValidator().
type RequestValidator struct {
    v *validator.Validate
}

// NewRequestValidator returns a validator that reports JSON field names.
func NewRequestValidator() *RequestValidator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(jsonFieldName)
    return &RequestValidator{v: v}
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i interface{}) error {
    return rv.v.Struct(i)
}

func jsonFieldName(f reflect.StructField) string {
    name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
    if name == "" || name == "-" {
        return f.Name
    }
    return name
}

// describe turns validation failures into a short client-facing message.
func describe(err error) string {
    var ve validator.ValidationErrors
    if !errors.As(err, &ve) {
        return err.Error()
    }
    msgs := make([]string, 0, len(ve))
    for _, fe := range ve {
        switch fe.Tag() {
        case "required":
            msgs = append(msgs, fe.Field()+" is required")
        case "datetime":
            msgs = append(msgs, fmt.Sprintf("%s must be a date formatted as %s", fe.Field(), fe.Param()))
        default:
            msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
        }
    }
    return strings.Join(msgs, "; ")
}
