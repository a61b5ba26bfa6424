package tui

import "errors"

// ErrMissingContractService is returned when the contract service is not provided.
var ErrMissingContractService = errors.New("tui: contract service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
