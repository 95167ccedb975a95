package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/dto"
	"github.com/rowjay/scissors/internal/errors"
)

// RequestValidator performs the only check the front-end owns: a link
// request must carry a URL. Everything else is the Link Service's call.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ValidateCreate rejects a URL that is empty or only whitespace. The request
// itself is left exactly as typed.
func (v *RequestValidator) ValidateCreate(req *dto.CreateLinkRequest) error {
	if err := v.validate.Var(strings.TrimSpace(req.OriginalURL), "required"); err != nil {
		return errors.NewValidationError("validator.ValidateCreate", constants.EmptyURLMessage, err)
	}
	return nil
}

// ValidateStruct runs the struct's `validate` tags and flattens the failures
// into one error.
func (v *RequestValidator) ValidateStruct(op string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(op, "invalid value", err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return errors.NewValidationError(op, strings.Join(fields, "; "), err)
}
