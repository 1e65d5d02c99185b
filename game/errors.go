package game

import "errors"

// Caller-facing failure kinds. The error text is the wire-visible kind, so
// clients can switch on it without a separate code field.
var (
	ErrNotAuthenticated  = errors.New("NotAuthenticated")
	ErrNotRegistered     = errors.New("NotRegistered")
	ErrAlreadyRegistered = errors.New("AlreadyRegistered")
	ErrRoomAlreadyExists = errors.New("RoomAlreadyExists")
	ErrRoomNotFound      = errors.New("RoomNotFound")
	ErrGameNotInProgress = errors.New("GameNotInProgress")
	ErrNotYourTurn       = errors.New("NotYourTurn")
	ErrNotInRoom         = errors.New("NotInRoom")
	ErrCannotJoinOwnRoom = errors.New("CannotJoinOwnRoom")

	// ErrInvalidMove deliberately collapses every board-engine rejection
	// (malformed payload, out-of-range index, occupied cell, illegal flip,
	// repeated attack, ...) into one kind. Clients depend on this shape.
	ErrInvalidMove = errors.New("InvalidMove")
)
