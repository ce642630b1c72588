// Package decoder defines the boundary between frame decoders and the
// dispatch layer that feeds them demodulated bits: the decoder interface,
// the record emitted on success, the per-device acquisition metadata, and
// the classified failure values every decoder returns instead of records.
package decoder

import (
	"time"

	"github.com/sensorwave/wattsrx/pkg/bitbuffer"
)

// Modulation identifies the on-air modulation a device transmits with.
type Modulation string

const (
	ModulationFSKPCM Modulation = "FSK_PCM"
)

// Record is a validated decode result.  Consumers rely on exactly these
// three fields, in this order: the constant model identifier, the frame
// bytes as lowercase hex, and the integrity-check method that validated
// them.
type Record struct {
	Model string `json:"model"`
	Raw   string `json:"raw"`
	MIC   string `json:"mic"`
}

// Device describes a frame format to the signal-acquisition layer: how wide
// its symbols are and when a quiet gap ends a burst.  These are declared
// constants of the format, not tunables of the decode algorithm.
type Device struct {
	Name       string
	Modulation Modulation
	ShortWidth time.Duration
	LongWidth  time.Duration
	ResetLimit time.Duration
	// Fields names the Record fields this device emits, in output order.
	Fields []string
}

// Decoder turns one captured bit sequence into a Record.  Decode never
// mutates its input and holds no state across calls, so a single Decoder
// may serve concurrent captures.
type Decoder interface {
	Device() Device
	Decode(*bitbuffer.Buffer) (Record, error)
}
