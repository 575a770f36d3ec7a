package handler

import "fmt"

// ErrHandlerNotFound is returned when a request names an unregistered handler.
type ErrHandlerNotFound struct {
	Name string
}

func (e *ErrHandlerNotFound) Error() string {
	return fmt.Sprintf("handler: not found: %s", e.Name)
}

// ErrHandlerAlreadyRegistered is returned when registering a duplicate name.
type ErrHandlerAlreadyRegistered struct {
	Name string
}

func (e *ErrHandlerAlreadyRegistered) Error() string {
	return fmt.Sprintf("handler: already registered: %s", e.Name)
}
