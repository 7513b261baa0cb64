// Package chunk defines the input side of the streaming pipeline: byte
// chunks as they arrive from the remote peer, and the PoisonPill
// sentinel used to cancel a running stream.
package chunk

// Chunk is one segment of the input byte stream, or the poison marker.
//
// A Chunk carries no framing semantics: an element may span many chunks
// and a single chunk may contain many elements. Chunks are wrapper
// values rather than bare byte slices so that PoisonPill remains a
// distinguished value no byte payload can collide with.
type Chunk struct {
	data   []byte
	poison bool
}

// PoisonPill is the cancellation sentinel. Any component wishing to
// stop a running stream injects PoisonPill into its chunk source; the
// stream terminates cleanly at its next read.
var PoisonPill = Chunk{poison: true}

// Bytes returns a Chunk carrying the payload p. The slice is not
// copied; the producer must not modify it after handoff.
func Bytes(p []byte) Chunk { return Chunk{data: p} }

// String returns a Chunk carrying the bytes of s.
func String(s string) Chunk { return Chunk{data: []byte(s)} }

// Data returns the chunk payload. The payload of PoisonPill is nil.
func (c Chunk) Data() []byte { return c.data }

// IsPoison reports whether c is the PoisonPill sentinel.
func (c Chunk) IsPoison() bool { return c.poison }

// Source is a FIFO source of chunks. Receiving suspends until a chunk,
// PoisonPill, or channel closure is available.
type Source <-chan Chunk
