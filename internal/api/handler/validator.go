package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Every externally supplied field passes through here before it is allowed
// anywhere near a store query or a write.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. The returned error is a
// human-readable reason; callers wrap it in domain.ErrValidation before it
// reaches a client.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// lookupUsernameRules is the whitelist for the single username query
// parameter on the lookup endpoint. Everything outside 1-20 alphanumeric
// characters is rejected, which is exactly what defuses an operator-shaped
// payload like user[$ne]=x: it either arrives as a different parameter name
// (missing → required fails) or as a non-alphanumeric literal.
const lookupUsernameRules = "required,max=20,alphanum"

// ValidateUsernameParam checks a raw query-parameter username against the
// whitelist. It never mutates the value: rejection, not sanitisation.
func (ev *echoValidator) ValidateUsernameParam(username string) error {
	if err := ev.v.Var(username, lookupUsernameRules); err != nil {
		return fmt.Errorf("%w: username must be 1-20 alphanumeric characters", domain.ErrValidation)
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "alphanum":
		return field + " must contain only letters and digits"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
