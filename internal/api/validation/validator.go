package validation

import (
	"regexp"
	"strings"

	"github.com/crownweb/contact-relay/internal/api/constants"
	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters of any script plus spaces, 2-50 characters
	nameRegex = regexp.MustCompile(`^[\p{L}\s]{2,50}$`)
	// ASCII local part, domain with a 2+ letter TLD
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	// Digits, spaces, dashes, plus and parentheses, 5-20 characters
	phoneRegex = regexp.MustCompile(`^[\d\s\-+()]{5,20}$`)
)

// RegisterValidators registers the contact-form validators on a validator instance
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("contact_name", validateName)
	v.RegisterValidation("contact_email", validateEmail)
	v.RegisterValidation("contact_phone", validatePhone)
}

func validateName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// Rejection describes a failed validation. Silent rejections (honeypot) are
// answered with success=false and no message at all.
type Rejection struct {
	Message string
	Silent  bool
}

// Validator enforces the submission rules in order, first failure wins.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the contact-form rules registered.
func New() *Validator {
	v := validator.New()
	RegisterValidators(v)
	return &Validator{validate: v}
}

// Validate checks a submission against the field rules. A nil return means
// the submission may be dispatched.
func (v *Validator) Validate(sub *contact.Submission) *Rejection {
	// Any honeypot content marks the submission as automated, whitespace
	// included; real users never touch the field at all
	if sub.Honeypot != "" {
		return &Rejection{Silent: true}
	}

	if strings.TrimSpace(sub.Name) == "" ||
		strings.TrimSpace(sub.Email) == "" ||
		strings.TrimSpace(sub.Message) == "" {
		return &Rejection{Message: constants.MsgMissingFields}
	}

	if err := v.validate.Var(sub.Name, "contact_name"); err != nil {
		return &Rejection{Message: constants.MsgInvalidName}
	}

	if err := v.validate.Var(sub.Email, "contact_email"); err != nil {
		return &Rejection{Message: constants.MsgInvalidEmail}
	}

	if sub.Phone != "" {
		if err := v.validate.Var(sub.Phone, "contact_phone"); err != nil {
			return &Rejection{Message: constants.MsgInvalidPhone}
		}
	}

	return nil
}
