package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"A": "1"}
	b := map[string]string{"B": "2", "C": "3"}

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"A": "1", "B": "2", "C": "3"}, all)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestHexDefines(t *testing.T) {
	assert := assert.New(t)

	defs := maps.Collect(HexDefines(map[string]int{"ROM_SIZE": 256, "RAM_SIZE": 0x10000}))
	assert.Equal("0x100", defs["ROM_SIZE"])
	assert.Equal("0x10000", defs["RAM_SIZE"])
}
