package multiworld

import "errors"

var (
	ErrDuplicatePlayer   = errors.New("player already exists")
	ErrDuplicateLocation = errors.New("location already exists")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnknownItem       = errors.New("unknown item")
	ErrLocationFilled    = errors.New("location already filled")
	ErrItemPlaced        = errors.New("item already placed")
)
