// Package authforms defines the sign-in and sign-up forms and their bundled
// presentation.
package authforms

import (
	"github.com/goliatone/go-formbind/pkg/schema"
)

const (
	// SignIn names the sign-in form.
	SignIn = "sign-in"
	// SignUp names the sign-up form.
	SignUp = "sign-up"
)

const (
	msgUsernameRequired        = "Username is required"
	msgEmailRequired           = "Email is required"
	msgEmailInvalid            = "Invalid email"
	msgPasswordRequired        = "Password is required"
	msgPasswordTooShort        = "Password must have than 8 characters"
	msgConfirmPasswordRequired = "Password confirmation is required"
	msgPasswordMismatch        = "Password do not match"

	passwordMinLength = 8
	usernameMaxLength = 100
)

// SignInSchema declares email and password.
func SignInSchema() *schema.Schema {
	return schema.New().
		Field("email").Required(msgEmailRequired).Email(msgEmailInvalid).
		Field("password").Required(msgPasswordRequired).Min(passwordMinLength, msgPasswordTooShort).Secret().
		MustBuild()
}

// SignUpSchema declares username, email, password and its confirmation. The
// confirmation must equal the password.
func SignUpSchema() *schema.Schema {
	return schema.New().
		Field("username").Required(msgUsernameRequired).Max(usernameMaxLength, "").
		Field("email").Required(msgEmailRequired).Email(msgEmailInvalid).
		Field("password").Required(msgPasswordRequired).Min(passwordMinLength, msgPasswordTooShort).Secret().
		Field("confirmPassword").Required(msgConfirmPasswordRequired).Secret().
		Done().
		RefineNamed("passwordsMatch", schema.FieldsEqual("password", "confirmPassword"), "confirmPassword", msgPasswordMismatch).
		MustBuild()
}
