package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated means the request carries no usable session.
	ErrUnauthenticated = errors.New("authentication required")
)

// Form field names, shared with the HTML forms.
const (
	FieldNonField = "__all__"

	FieldName    = "name"
	FieldCountry = "country"

	FieldModel        = "model"
	FieldManufacturer = "manufacturer"
	FieldDrivers      = "drivers"

	FieldUsername      = "username"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldLicenseNumber = "license_number"
	FieldPassword1     = "password1"
	FieldPassword2     = "password2"
)

const (
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgUsernameTaken = "A user with that username already exists."
	msgStaleChoice   = "One of the selected records no longer exists."
)
