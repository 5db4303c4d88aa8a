package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrDelivery = errors.New("email delivery failed")
)

// NotFoundError reports a missing residence, or a residence with no agent attached.
type NotFoundError struct {
	Resource string // "residence" | "agent"
	ID       int64
}

func (e *NotFoundError) Error() string {
	if e.Resource == "agent" {
		return fmt.Sprintf("residence %d has no agent", e.ID)
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DeliveryError wraps whatever the email provider rejected the message with.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return ErrDelivery.Error()
	}
	return ErrDelivery.Error() + ": " + e.Err.Error()
}

func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }

func (e *DeliveryError) Unwrap() error { return e.Err }
