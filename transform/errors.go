package transform

import "github.com/pkg/errors"

var (
	ErrCycle          = errors.New("transform would become its own ancestor")
	ErrUnknownChannel = errors.New("unknown channel")
	ErrEulerOrder     = errors.New("invalid euler order")
)
