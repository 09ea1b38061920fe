package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iho/bankrec/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Length limits come from the domain so requests and saves agree.
	limits := map[string]int{
		"narration":   domain.MaxNarrationLength,
		"adjustments": domain.MaxItemsPerList,
		"bankcode":    domain.MaxBankCodeLength,
		"bankname":    domain.MaxBankNameLength,
		"heading":     domain.MaxReportHeadingLength,
	}
	for alias, n := range limits {
		v.RegisterAlias(alias, fmt.Sprintf("max=%d", n))
	}
	return v
}

// Validate runs the struct tags of req and reports failures as a
// *domain.ValidationError keyed by JSON field path.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// fieldPath drops the root struct and embedded struct names from the
// namespace: "StatementRequest.InputsRequest.additions[0].narration" becomes
// "additions[0].narration".
func fieldPath(fe validator.FieldError) string {
	ns := strings.ReplaceAll(fe.Namespace(), "InputsRequest.", "")
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " items"
		}
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.ActualTag() + " validation"
	}
}
