package domain

import "errors"

var (
	// ErrInvalidInput is returned when a pricing call is malformed. it is
	// always detected before the backward sweep starts
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownOptionType = errors.New("unknown option type")

	// ErrInsufficientRegressionData means a time step had fewer in-the-money
	// paths than regression coefficients, or the fit could not produce
	// finite coefficients
	ErrInsufficientRegressionData = errors.New("insufficient regression data")
)
