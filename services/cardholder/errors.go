package cardholder

import "errors"

var (
	ErrNameRequired = errors.New("card holder name is required")
	ErrForbidden    = errors.New("card holder belongs to another user")
)
