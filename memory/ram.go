package memory

// Ram is a read-write bank.
type Ram struct {
	bank
}

var _ Writer = (*Ram)(nil)

// NewRam creates a zero-filled RAM of size bytes.
func NewRam(size int) (ram *Ram, err error) {
	b, err := newBank(size)
	if err != nil {
		return
	}

	ram = &Ram{bank: b}
	return
}

// SetByte stores value at address.
func (ram *Ram) SetByte(address uint16, value uint8) (err error) {
	err = ram.check(address)
	if err != nil {
		return
	}

	ram.data[address] = value
	return
}
