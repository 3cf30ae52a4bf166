package services

import "errors"

// Service-level failures. Handlers classify them with errors.Is.
var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInvalidIdentifier     = errors.New("invalid order identifier")
	ErrNotFound              = errors.New("order not found")
	ErrPersistence           = errors.New("order store failure")
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)
