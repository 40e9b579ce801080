// Package validation cleans and checks the sign-up and sign-in forms before
// anything reaches the identity provider.
//
// All functions are pure. Failures are reported as *ValidationError values,
// which match ErrValidation under errors.Is and carry a message that can be
// shown to the user as is.
package validation
