package service

import "errors"

// API error taxonomy. The message text of each error is part of the wire
// contract and must not change.
var (
	// ErrInvalidItems is returned when no product/quantity pair survives
	// validation.
	ErrInvalidItems = errors.New("need valid products and volumes")

	// ErrInvalidCustomer is returned when the customer reference is neither
	// numeric nor a plain name.
	ErrInvalidCustomer = errors.New("need valid customer name or id")

	// ErrCustomerNotFound is returned when a numeric customer id does not
	// exist in the store.
	ErrCustomerNotFound = errors.New("need valid customer id")

	// ErrInvalidUnit is returned for an unrecognized report unit. The message
	// doubles as the route usage hint.
	ErrInvalidUnit = errors.New("/shipt/api/v1/data/<starting:yyyymmdd>/<ending:yyyymmdd>/<unit:['day','week','month']>")
)
