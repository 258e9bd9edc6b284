package ecs

import "github.com/rotisserie/eris"

var (
	// ErrComponentNotRegistered is returned when a component type is used
	// before RegisterComponent was called for it, or after it was unregistered.
	ErrComponentNotRegistered = eris.New("component not registered")

	// ErrIndexOutOfRange is returned by read-only slot access past the end of
	// a storage. Read paths never grow a storage.
	ErrIndexOutOfRange = eris.New("index out of range")
)
