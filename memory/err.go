package memory

import (
	"github.com/ezrec/cjemu/translate"
)

var f = translate.From

// ErrOutOfBounds is returned for an access at or past the end of a bank.
type ErrOutOfBounds struct {
	Address int
	Size    int
}

func (err ErrOutOfBounds) Error() string {
	return f("address 0x%04x out of bounds (size 0x%x)", err.Address, err.Size)
}

// Is matches any ErrOutOfBounds, regardless of address.
func (err ErrOutOfBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfBounds)
	return
}

// ErrBankSize is returned when a bank is created with an invalid size.
type ErrBankSize int

func (err ErrBankSize) Error() string {
	return f("bank size %d not in 1..%d", int(err), ADDRESS_SPACE)
}

// ErrImageSize is returned when a ROM image does not fit.
type ErrImageSize struct {
	Image int
	Size  int
}

func (err ErrImageSize) Error() string {
	return f("image of %d bytes exceeds ROM size %d", err.Image, err.Size)
}
