package apperr

import (
	"errors"
	"fmt"
)

// Error kinds used across services. Endpoints decide HTTP mapping,
// services only wrap one of these sentinels.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrGateway       = errors.New("gateway error")
	ErrPersistence   = errors.New("persistence error")
)

func Validationf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, a...))
}

func Configurationf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, a...))
}

func Gatewayf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrGateway, fmt.Sprintf(format, a...))
}

// Persistence wraps a record-store failure, keeping the cause in the chain.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
