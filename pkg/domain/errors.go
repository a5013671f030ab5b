package domain

import "errors"

// ErrLastDay is returned when a removal would leave the plan with no days.
var ErrLastDay = errors.New("plan must keep at least one day")

// ErrDayNotFound is returned when a day id does not exist in the plan.
var ErrDayNotFound = errors.New("day not found")

// ErrDestinationNotFound is returned when a destination id does not exist
// in any day of the plan.
var ErrDestinationNotFound = errors.New("destination not found")

// ErrDuplicateDestination is returned when a destination with the same id
// is already present on the target day.
var ErrDuplicateDestination = errors.New("destination already on this day")

// ErrEmptyTripName is returned by the persistence gate when saving an
// unnamed plan.
var ErrEmptyTripName = errors.New("trip name is empty")

// ErrNoSession is returned by the persistence gate when no session token
// was supplied.
var ErrNoSession = errors.New("no session token")

// ErrSessionExpired is returned when the persistence service rejects the
// session token.
var ErrSessionExpired = errors.New("session expired")

// ErrTripNotFound is returned when a trip id cannot be found in a store.
var ErrTripNotFound = errors.New("trip not found")

// ErrNoRouteMatch is returned when an optimizer response matches none of
// the original destinations.
var ErrNoRouteMatch = errors.New("optimizer result matches no destination")

// ErrStaleResult is returned when an async result was computed against a
// plan version that a later edit has superseded.
var ErrStaleResult = errors.New("stale async result")
