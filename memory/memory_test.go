package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankSize(t *testing.T) {
	assert := assert.New(t)

	for _, size := range []int{-1, 0, ADDRESS_SPACE + 1} {
		_, err := NewRam(size)
		assert.ErrorIs(err, ErrBankSize(size), size)
		_, err = NewRom(size)
		assert.ErrorIs(err, ErrBankSize(size), size)
	}

	ram, err := NewRam(ADDRESS_SPACE)
	assert.NoError(err)
	assert.Equal(ADDRESS_SPACE, ram.Size())

	_, err = ram.Byte(0xffff)
	assert.NoError(err)
}

func TestRam_SetByte(t *testing.T) {
	assert := assert.New(t)

	ram, err := NewRam(256)
	require.NoError(t, err)

	for addr := range 256 {
		value, err := ram.Byte(uint16(addr))
		assert.NoError(err)
		assert.Equal(uint8(0), value)

		err = ram.SetByte(uint16(addr), uint8(addr^0xa5))
		assert.NoError(err)

		value, err = ram.Byte(uint16(addr))
		assert.NoError(err)
		assert.Equal(uint8(addr^0xa5), value)
	}
}

func TestRam_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	ram, err := NewRam(16)
	require.NoError(t, err)

	before := Dump(ram, 0, 16)

	for _, addr := range []uint16{16, 17, 0x100, 0xffff} {
		_, err := ram.Byte(addr)
		assert.ErrorIs(err, ErrOutOfBounds{})

		err = ram.SetByte(addr, 0xff)
		assert.ErrorIs(err, ErrOutOfBounds{})

		var oob ErrOutOfBounds
		assert.True(errors.As(err, &oob))
		assert.Equal(int(addr), oob.Address)
		assert.Equal(16, oob.Size)
	}

	assert.Equal(before, Dump(ram, 0, 16))
}

func TestRom_Load(t *testing.T) {
	assert := assert.New(t)

	rom, err := NewRom(4)
	require.NoError(t, err)

	err = rom.Load([]uint8{1, 2, 3, 4})
	assert.NoError(err)
	assert.Equal([]uint8{1, 2, 3, 4}, Dump(rom, 0, 4))

	err = rom.Load([]uint8{9})
	assert.NoError(err)
	assert.Equal([]uint8{9, 0, 0, 0}, Dump(rom, 0, 4))

	err = rom.Load([]uint8{5, 6, 7, 8, 9})
	assert.ErrorIs(err, ErrImageSize{Image: 5, Size: 4})
	assert.Equal([]uint8{9, 0, 0, 0}, Dump(rom, 0, 4))

	_, err = rom.Byte(4)
	assert.ErrorIs(err, ErrOutOfBounds{})
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	ram, err := NewRam(8)
	require.NoError(t, err)

	for n := range 8 {
		assert.NoError(ram.SetByte(uint16(n), uint8(n+1)))
	}

	assert.Equal([]uint8{3, 4, 5}, Dump(ram, 2, 3))
	assert.Equal([]uint8{7, 8}, Dump(ram, 6, 10))
	assert.Nil(Dump(ram, 8, 1))
	assert.Nil(Dump(ram, 0, 0))
}
