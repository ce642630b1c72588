// Package wattsvision decodes the frame format transmitted by Watts Vision
// thermostats and sensors (FSK PCM, 868.3 MHz, 26 us symbols, CC1100-based).
//
// On-air layout after the radio preamble:
//
//	Preamble tail {16} 0xaaaa
//	Sync word     {32} 0xd391d391
//	Length        {8}  frame length incl. length byte, excl. checksums
//	Payload       {length-1 bytes}
//	Checksum      {16} CRC-16 poly 0x8005 init 0xffff over the payload
//	Checksum      {16} CRC-16 over the whole message, computed by the
//	                   transceiver
//
// Only the inner checksum is validated: the outer one sits at the very end
// of the burst, where the demodulation front end routinely loses bits.
// Usual lengths seen on air are 20 (0x14) and 34 (0x22).
package wattsvision

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sensorwave/wattsrx/pkg/bitbuffer"
	"github.com/sensorwave/wattsrx/pkg/crc16"
	"github.com/sensorwave/wattsrx/pkg/decoder"
)

const (
	Model = "WattsVision"

	// MaxFrameLength caps the declared length byte; anything larger is a
	// corrupted capture or noise.
	MaxFrameLength = 50

	syncBits = 48
	crcPoly  = 0x8005
	crcInit  = 0xffff

	// Smallest decodable burst: sync + length byte + one payload byte +
	// inner checksum + outer checksum.
	minFrameBits = syncBits + 8 + 8 + 16 + 16

	// Scratch capacity: length byte + declared bytes + inner checksum +
	// the first outer-checksum byte picked up by the extraction window.
	frameCap = MaxFrameLength + 3
)

// syncPattern anchors the frame: the last two preamble bytes plus the sync
// word.  The demodulator gives no byte alignment, so it is matched at bit
// granularity.
var syncPattern = []byte{0xaa, 0xaa, 0xd3, 0x91, 0xd3, 0x91}

// Decoder extracts and validates Watts Vision frames.  It is stateless
// between calls and safe for concurrent use.
type Decoder struct {
	logger zerolog.Logger
}

var _ decoder.Decoder = (*Decoder)(nil)

type Option func(*Decoder)

// WithLogger routes diagnostic output for rejected captures.  Logging is
// informational only; it never changes what Decode returns.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

func New(opts ...Option) *Decoder {
	d := &Decoder{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Device reports the acquisition parameters for this frame format.
func (d *Decoder) Device() decoder.Device {
	return decoder.Device{
		Name:       "Watts Vision thermostats",
		Modulation: decoder.ModulationFSKPCM,
		ShortWidth: 26 * time.Microsecond,
		LongWidth:  26 * time.Microsecond,
		ResetLimit: 1000 * time.Microsecond,
		Fields:     []string{"model", "raw", "mic"},
	}
}

// Decode locates one frame in a single-row capture and returns its record,
// or a classified failure wrapping one of the pkg/decoder sentinels.  The
// cheapest checks run first; no partial record ever escapes.
func (d *Decoder) Decode(buf *bitbuffer.Buffer) (decoder.Record, error) {
	if n := buf.NumRows(); n != 1 {
		return decoder.Record{}, fmt.Errorf("got %d rows: %w", n, decoder.ErrMultipleRows)
	}
	const row = 0

	if n := buf.BitLen(row); n < minFrameBits {
		return decoder.Record{}, fmt.Errorf("%d of %d bits: %w", n, minFrameBits, decoder.ErrTooShort)
	}

	pos, ok := buf.Search(row, 0, syncPattern, syncBits)
	if !ok {
		return decoder.Record{}, decoder.ErrSyncNotFound
	}

	var frame [frameCap]byte
	if !buf.ExtractBytes(row, pos+syncBits, frame[:1], 8) {
		return decoder.Record{}, fmt.Errorf("sync at bit %d leaves no length byte: %w", pos, decoder.ErrTooShort)
	}
	length := int(frame[0])

	if length > MaxFrameLength {
		d.logger.Debug().Int("length", length).Msg("frame too large, dropping")
		return decoder.Record{}, fmt.Errorf("declared length %d: %w", length, decoder.ErrFrameTooLarge)
	}
	if length == 0 {
		return decoder.Record{}, fmt.Errorf("declared length 0 leaves no payload: %w", decoder.ErrTooShort)
	}

	// length+2 bytes follow the length byte: payload, inner checksum, and
	// one byte of the outer checksum that is never interpreted.  The
	// length gate above bounds this against frameCap.
	if !buf.ExtractBytes(row, pos+syncBits+8, frame[1:], (length+2)*8) {
		return decoder.Record{}, fmt.Errorf("frame of %d bytes truncated: %w", length, decoder.ErrTooShort)
	}

	d.logger.Debug().Hex("frame", frame[:length]).Msg("frame data")

	want := crc16.Checksum(frame[1:length], crcPoly, crcInit)
	got := uint16(frame[length])<<8 | uint16(frame[length+1])
	if got != want {
		d.logger.Debug().
			Uint16("got", got).
			Uint16("want", want).
			Hex("frame", frame[:length]).
			Msg("CRC mismatch")
		return decoder.Record{}, fmt.Errorf("got %04x want %04x: %w", got, want, decoder.ErrChecksum)
	}

	return decoder.Record{
		Model: Model,
		Raw:   hex.EncodeToString(frame[:length]),
		MIC:   "CRC",
	}, nil
}
