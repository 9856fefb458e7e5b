package memory

// Rom is a read-only bank. Its contents can only be replaced as a whole
// with Load, before the machine starts executing.
type Rom struct {
	bank
}

var _ Reader = (*Rom)(nil)

// NewRom creates a zero-filled ROM of size bytes.
func NewRom(size int) (rom *Rom, err error) {
	b, err := newBank(size)
	if err != nil {
		return
	}

	rom = &Rom{bank: b}
	return
}

// Load copies image into the ROM starting at address 0. Bytes past the
// end of the image are zeroed. An image larger than the ROM is rejected
// and the ROM is left untouched.
func (rom *Rom) Load(image []uint8) (err error) {
	if len(image) > len(rom.data) {
		err = ErrImageSize{Image: len(image), Size: len(rom.data)}
		return
	}

	n := copy(rom.data, image)
	clear(rom.data[n:])

	return
}
