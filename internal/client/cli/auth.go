package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cooksocial/internal/client/countries"
	"github.com/dmitrijs2005/cooksocial/internal/client/validation"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// maxCountryChoices caps how many matches the nationality search lists.
const maxCountryChoices = 10

// Register walks the user through the sign-up form. Password strength and
// confirmation are echoed back as they are entered; the controller performs
// the binding checks.
func (a *App) Register(ctx context.Context) error {
	var (
		f   validation.SignupForm
		err error
	)

	if f.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.reader, "Email (optional)", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Create a strong password", a.out); err != nil {
		return err
	}
	a.printStrength(f.Password)

	if f.ConfirmPassword, err = getPassword(a.reader, "Confirm your password", a.out); err != nil {
		return err
	}
	if f.ConfirmPassword == f.Password {
		fmt.Fprintln(a.out, "  ✓ Passwords match")
	} else {
		fmt.Fprintln(a.out, "  ✗ Passwords do not match")
	}

	if f.Birthdate, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if f.Gender, err = getSimpleText(a.reader, "Gender (male, female, other)", a.out); err != nil {
		return err
	}
	if f.Nationality, err = a.pickCountry(); err != nil {
		return err
	}
	if f.Allergies, err = getSimpleText(a.reader, "Allergies, e.g. nuts, dairy, shellfish (comma separated)", a.out); err != nil {
		return err
	}

	err = a.call(ctx, func(ctx context.Context) error {
		return a.auth.SignUp(ctx, f)
	})
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "Registration successful! You can now sign in.")
	return nil
}

func (a *App) printStrength(pw string) {
	s := validation.CheckPassword(pw)
	rules := []struct {
		ok    bool
		label string
	}{
		{s.Length, "At least 8 characters"},
		{s.Uppercase, "One uppercase letter"},
		{s.Lowercase, "One lowercase letter"},
		{s.Number, "One number"},
	}
	for _, r := range rules {
		mark := "✗"
		if r.ok {
			mark = "✓"
		}
		fmt.Fprintf(a.out, "  %s %s\n", mark, r.label)
	}
}

// pickCountry searches the country list until the query names exactly one
// country. An empty answer skips the field.
func (a *App) pickCountry() (string, error) {
	for {
		q, err := getSimpleText(a.reader, "Nationality (type to search, empty to skip)", a.out)
		if err != nil {
			return "", err
		}
		if q == "" {
			return "", nil
		}
		if c, ok := countries.Lookup(q); ok {
			return c.Name, nil
		}

		matches := countries.Filter(q)
		switch len(matches) {
		case 0:
			fmt.Fprintf(a.out, "No country matches %q\n", q)
		case 1:
			fmt.Fprintf(a.out, "Selected %s\n", matches[0].Name)
			return matches[0].Name, nil
		default:
			for i, c := range matches {
				if i == maxCountryChoices {
					fmt.Fprintf(a.out, "  ... and %d more\n", len(matches)-i)
					break
				}
				fmt.Fprintf(a.out, "  - %s\n", c.Name)
			}
		}
	}
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	var (
		c   validation.Credentials
		err error
	)
	if c.UsernameOrEmail, err = getSimpleText(a.reader, "Username or email", a.out); err != nil {
		return err
	}
	if c.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}

	err = a.call(ctx, func(ctx context.Context) error {
		return a.auth.SignIn(ctx, c)
	})
	if err != nil {
		a.report(err)
		return err
	}

	if s, ok := a.auth.Session(); ok {
		fmt.Fprintf(a.out, "Welcome, %s!\n", s.Username)
	}
	return nil
}

// Logout signs out at the provider. The feed is dropped with the session.
func (a *App) Logout(ctx context.Context) error {
	err := a.call(ctx, func(ctx context.Context) error {
		return a.auth.SignOut(ctx)
	})
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s, ok := a.auth.Session()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "Signed in as %s (id %s)\n", s.Username, s.UserID)
	return nil
}
