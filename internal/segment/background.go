package segment

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidChannels is returned for an empty or unknown channel set.
var ErrInvalidChannels = errors.New("segment: invalid channel set")

// Channels selects which color channels take part in the distance test.
type Channels uint8

const (
	ChannelR Channels = 1 << iota
	ChannelG
	ChannelB

	// ChannelsRGB compares all three channels.
	ChannelsRGB = ChannelR | ChannelG | ChannelB

	// ChannelsRG ignores blue. Earlier scanner builds compared only the first
	// two channels; keep it available for reproducing their masks.
	ChannelsRG = ChannelR | ChannelG
)

// ParseChannels reads a channel set such as "rgb" or "rg".
func ParseChannels(s string) (Channels, error) {
	var c Channels
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case 'r':
			c |= ChannelR
		case 'g':
			c |= ChannelG
		case 'b':
			c |= ChannelB
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidChannels, s)
		}
	}
	if c == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChannels, s)
	}
	return c, nil
}

func (c Channels) String() string {
	var sb strings.Builder
	if c&ChannelR != 0 {
		sb.WriteByte('r')
	}
	if c&ChannelG != 0 {
		sb.WriteByte('g')
	}
	if c&ChannelB != 0 {
		sb.WriteByte('b')
	}
	return sb.String()
}

// Background describes the color the specimen was photographed on.
type Background struct {
	Color color.RGBA

	// Threshold is the squared distance at or above which a pixel counts as
	// foreground.
	Threshold uint32

	Channels Channels
}

// DistanceSquared returns the squared Euclidean distance between (r, g, b)
// and the background color over the selected channels.
func (bg Background) DistanceSquared(r, g, b uint8) uint32 {
	var sum uint32
	if bg.Channels&ChannelR != 0 {
		sum += sq(r, bg.Color.R)
	}
	if bg.Channels&ChannelG != 0 {
		sum += sq(g, bg.Color.G)
	}
	if bg.Channels&ChannelB != 0 {
		sum += sq(b, bg.Color.B)
	}
	return sum
}

// IsForeground reports whether (r, g, b) is far enough from the background.
func (bg Background) IsForeground(r, g, b uint8) bool {
	return bg.DistanceSquared(r, g, b) >= bg.Threshold
}

func sq(a, b uint8) uint32 {
	d := int32(a) - int32(b)
	return uint32(d * d)
}
