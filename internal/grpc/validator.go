package server

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks request messages before they reach the backend.
// Unified series semantics (point ordering, dates on point-in-time bounds)
// are checked again by the unification engine.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks req against its struct tags.
func (v *RequestValidator) Validate(req any) error {
	if req == nil {
		return fmt.Errorf("missing request")
	}
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("invalid %s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("invalid %s: %s", fe.Namespace(), fe.Tag())
	}
	return err
}
