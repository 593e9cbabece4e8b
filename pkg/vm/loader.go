package vm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrImageIO is returned by LoadImage when the image stream yields fewer
// than one 16-bit word (it must contain at least the origin).
var ErrImageIO = errors.New("vm: image I/O error")

// LoadImage reads a big-endian LC-3 image from r: the first word is the
// origin (it becomes PC and the base load address), and every subsequent
// word is stored contiguously in memory starting at the origin, stopping
// at EOF or once address 65535 would be exceeded. The origin is byte-swapped
// first, then every following word is byte-swapped as it is loaded.
func LoadImage(m *Machine, r io.Reader) error {
	var originBuf [2]byte
	if _, err := io.ReadFull(r, originBuf[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrImageIO, err)
	}
	origin := binary.BigEndian.Uint16(originBuf[:])
	m.PC = origin

	addr := uint32(origin)
	var wordBuf [2]byte
	for addr < MemSize {
		n, err := io.ReadFull(r, wordBuf[:])
		if n == 2 {
			m.Mem[addr] = binary.BigEndian.Uint16(wordBuf[:])
			addr++
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			// A dangling odd byte at EOF: the image is malformed, but the
			// rest of the file already loaded successfully; treat it the
			// same as end-of-file rather than failing the whole load.
			break
		}
		return fmt.Errorf("%w: %s", ErrImageIO, err)
	}
	return nil
}
