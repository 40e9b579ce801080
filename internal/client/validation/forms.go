package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Gender values accepted by the registration form.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// BirthdateLayout is the date format of the birthdate field; it is also the
// format the identity provider expects for the birthdate attribute.
const BirthdateLayout = "2006-01-02"

const tagStrongPassword = "strongpwd"

// SignupForm is the registration form as typed by the user.
type SignupForm struct {
	Username        string `form:"username" validate:"required,min=3"`
	Email           string `form:"email" validate:"omitempty,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword"`
	Birthdate       string `form:"birthdate" validate:"required,datetime=2006-01-02"`
	Gender          string `form:"gender" validate:"required,oneof=male female other"`
	Nationality     string `form:"nationality"`
	Allergies       string `form:"allergies"`
}

// Credentials is the sign-in form.
type Credentials struct {
	UsernameOrEmail string `form:"usernameOrEmail" validate:"required"`
	Password        string `form:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	mustRegister(v, tagStrongPassword, func(fl validator.FieldLevel) bool {
		return CheckPassword(fl.Field().String()).OK()
	})
	return v
}

// mustRegister adds a custom rule and panics when validator rejects it.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Errorf("register %q validation error: %w", tag, err))
	}
}

// Sanitized returns a copy with every field except the two password fields
// passed through Sanitize. Allergies are also normalized.
func (f SignupForm) Sanitized() SignupForm {
	return SignupForm{
		Username:        Sanitize(f.Username),
		Email:           Sanitize(f.Email),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		Birthdate:       Sanitize(f.Birthdate),
		Gender:          strings.ToLower(Sanitize(f.Gender)),
		Nationality:     Sanitize(f.Nationality),
		Allergies:       NormalizeAllergies(f.Allergies),
	}
}

// ValidateSignup checks required fields and minimum lengths. The password
// strength policy is a separate gate, see ValidatePasswordStrength.
func ValidateSignup(f SignupForm) error {
	return translate(validate.Struct(f))
}

// ValidateCredentials checks that both sign-in fields are filled.
func ValidateCredentials(c Credentials) error {
	return translate(validate.Struct(c))
}

// CheckConfirmation fails when the password and its confirmation differ.
func CheckConfirmation(password, confirm string) error {
	if password != confirm {
		return invalid("confirmPassword", "Passwords do not match")
	}
	return nil
}

// ValidatePasswordStrength enforces the full password policy.
func ValidatePasswordStrength(pw string) error {
	if err := validate.Var(pw, tagStrongPassword); err != nil {
		missing := CheckPassword(pw).Missing()
		return invalid("password", "Password does not meet requirements: "+strings.Join(missing, ", "))
	}
	return nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := verrs[0]
	return invalid(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please fill in all required fields"
	case "min":
		switch fe.Field() {
		case "username":
			return "Username must be at least " + fe.Param() + " characters"
		case "password":
			return "Password must be at least " + fe.Param() + " characters"
		}
	case "email":
		return "Please enter a valid email address"
	case "datetime":
		return "Date of birth must use the YYYY-MM-DD format"
	case "oneof":
		return "Gender must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return fmt.Sprintf("Invalid %s", fe.Field())
}
