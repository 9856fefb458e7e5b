// Package memory provides the fixed-size, byte-addressable memory banks of
// the virtual machine: a read-only Rom and a read-write Ram.
package memory

const (
	ADDRESS_SPACE = 1 << 16 // Bytes addressable by a 16-bit address.
)

// Reader is a bank that can be read.
type Reader interface {
	// Size returns the fixed capacity of the bank in bytes.
	Size() int
	// Byte returns the byte at address, or ErrOutOfBounds.
	Byte(address uint16) (value uint8, err error)
}

// Writer is a bank that can be read and written.
type Writer interface {
	Reader
	// SetByte stores value at address, or fails with ErrOutOfBounds
	// without modifying the bank.
	SetByte(address uint16, value uint8) (err error)
}

// bank is the backing store shared by Rom and Ram.
type bank struct {
	data []uint8
}

func newBank(size int) (b bank, err error) {
	if size <= 0 || size > ADDRESS_SPACE {
		err = ErrBankSize(size)
		return
	}

	b.data = make([]uint8, size)
	return
}

func (b *bank) Size() int {
	return len(b.data)
}

func (b *bank) check(address uint16) (err error) {
	if int(address) >= len(b.data) {
		err = ErrOutOfBounds{Address: int(address), Size: len(b.data)}
	}
	return
}

func (b *bank) Byte(address uint16) (value uint8, err error) {
	err = b.check(address)
	if err != nil {
		return
	}

	value = b.data[address]
	return
}

// Dump returns a copy of up to count bytes starting at start, clipped to
// the size of the bank.
func Dump(r Reader, start uint16, count int) (data []uint8) {
	for n := range count {
		address := int(start) + n
		if address >= r.Size() || address >= ADDRESS_SPACE {
			break
		}
		value, err := r.Byte(uint16(address))
		if err != nil {
			break
		}
		data = append(data, value)
	}

	return
}
