// Package bitbuffer holds demodulated bits the way they arrive off the air:
// grouped into rows (one row per received burst), packed MSB-first, and
// addressable at bit granularity.  Radio frames carry no byte-boundary
// guarantee, so pattern search and byte extraction both work from arbitrary
// bit offsets.
package bitbuffer

type row struct {
	data []byte
	bits int
}

// Buffer is an append-once, read-many container of demodulated bit rows.
// Row data is copied in on AddRow; nothing mutates it afterwards, so a
// Buffer may be read from multiple goroutines concurrently.
type Buffer struct {
	rows []row
}

func New() *Buffer {
	return &Buffer{}
}

// NewSingleRow builds a one-row buffer holding the first nBits of data.
func NewSingleRow(data []byte, nBits int) *Buffer {
	b := New()
	b.AddRow(data, nBits)
	return b
}

// AddRow appends a row containing the first nBits of data, MSB first.
// Bits beyond nBits in the final byte are ignored.
func (b *Buffer) AddRow(data []byte, nBits int) {
	if nBits > len(data)*8 {
		nBits = len(data) * 8
	}
	nBytes := (nBits + 7) / 8
	cp := make([]byte, nBytes)
	copy(cp, data[:nBytes])
	b.rows = append(b.rows, row{data: cp, bits: nBits})
}

func (b *Buffer) NumRows() int {
	return len(b.rows)
}

// BitLen returns the number of bits in the given row.
func (b *Buffer) BitLen(rowIdx int) int {
	return b.rows[rowIdx].bits
}

// At returns the bit (0 or 1) at the given absolute bit offset within a row.
// Offsets out of range panic, same as slice indexing.
func (b *Buffer) At(rowIdx, bit int) byte {
	r := b.rows[rowIdx]
	if bit < 0 || bit >= r.bits {
		panic("bitbuffer: bit index out of range")
	}
	return r.data[bit>>3] >> (7 - uint(bit&7)) & 1
}

// Search returns the bit offset of the first occurrence of the first nBits
// of pattern within the row, starting at or after from.  The match may sit
// at any bit alignment.  ok is false if the pattern does not occur.
//
// Patterns up to 64 bits run through a rolling shift register, one compare
// per input bit; longer patterns fall back to a direct bit comparison.
func (b *Buffer) Search(rowIdx, from int, pattern []byte, nBits int) (pos int, ok bool) {
	r := b.rows[rowIdx]
	if from < 0 {
		from = 0
	}
	if nBits <= 0 || nBits > len(pattern)*8 || from+nBits > r.bits {
		return 0, false
	}
	if nBits <= 64 {
		return b.searchRegister(rowIdx, from, pattern, nBits)
	}
	return b.searchDirect(rowIdx, from, pattern, nBits)
}

func (b *Buffer) searchRegister(rowIdx, from int, pattern []byte, nBits int) (int, bool) {
	var want, reg uint64
	for i := 0; i < nBits; i++ {
		want = want<<1 | uint64(pattern[i>>3]>>(7-uint(i&7))&1)
	}
	mask := ^uint64(0) >> uint(64-nBits)

	end := b.rows[rowIdx].bits
	for i := from; i < end; i++ {
		reg = reg<<1 | uint64(b.At(rowIdx, i))
		if i-from+1 >= nBits && reg&mask == want {
			return i - nBits + 1, true
		}
	}
	return 0, false
}

func (b *Buffer) searchDirect(rowIdx, from int, pattern []byte, nBits int) (int, bool) {
	end := b.rows[rowIdx].bits - nBits
	for pos := from; pos <= end; pos++ {
		match := true
		for i := 0; i < nBits; i++ {
			if b.At(rowIdx, pos+i) != pattern[i>>3]>>(7-uint(i&7))&1 {
				match = false
				break
			}
		}
		if match {
			return pos, true
		}
	}
	return 0, false
}

// ExtractBytes repacks nBits starting at bit offset from into dst, MSB
// first.  A partial trailing byte is left-aligned and zero-padded.  It
// returns false without touching dst when the row holds fewer than nBits
// past from, or when dst is too small; there is no partial extraction.
func (b *Buffer) ExtractBytes(rowIdx, from int, dst []byte, nBits int) bool {
	r := b.rows[rowIdx]
	if from < 0 || nBits < 0 || from+nBits > r.bits || (nBits+7)/8 > len(dst) {
		return false
	}
	for i := 0; i < nBits; i++ {
		if i&7 == 0 {
			dst[i>>3] = 0
		}
		dst[i>>3] |= b.At(rowIdx, from+i) << (7 - uint(i&7))
	}
	return true
}
