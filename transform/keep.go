package transform

import (
	"strings"

	"github.com/pkg/errors"
)

// Keep selects the channels that must stay spatially unchanged while a
// transform is reparented or its reference frame is rewritten.
type Keep uint8

const (
	KeepPosition Keep = 1 << iota
	KeepRotation
	KeepScale
)

const (
	KeepNone Keep = 0
	KeepAll       = KeepPosition | KeepRotation | KeepScale
)

var channelNames = []struct {
	keep Keep
	name string
}{
	{KeepPosition, "position"},
	{KeepRotation, "rotation"},
	{KeepScale, "scale"},
}

// Has reports whether every channel in c is selected
func (k Keep) Has(c Keep) bool {
	return k&c == c
}

func (k Keep) String() string {
	if k == KeepNone {
		return "none"
	}

	var names []string
	for _, channel := range channelNames {
		if k.Has(channel.keep) {
			names = append(names, channel.name)
		}
	}

	return strings.Join(names, "|")
}

// ParseKeep converts channel names ("position", "rotation", "scale") into a
// Keep set. Names are case-insensitive. No names yields KeepNone.
func ParseKeep(names ...string) (Keep, error) {
	keep := KeepNone

next:
	for _, name := range names {
		for _, channel := range channelNames {
			if strings.EqualFold(name, channel.name) {
				keep |= channel.keep
				continue next
			}
		}

		return KeepNone, errors.Wrapf(ErrUnknownChannel, "%q", name)
	}

	return keep, nil
}
