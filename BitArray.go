package dstrace

import (
	"math/bits"
)

// NewBitArray that can hold at least size bits, all of them down.
func NewBitArray(size int) BitArray {
	return BitArray{bits: make([]uint, (size+bits.UintSize-1)/bits.UintSize)}
}

// BitArray is a fixed size bit set. The zero value holds no bits.
type BitArray struct {
	bits []uint
}

// Len is the number of addressable bits, always a multiple of bits.UintSize.
func (u BitArray) Len() int {
	return len(u.bits) * bits.UintSize
}

func (u BitArray) Get(i int) bool {
	return (u.bits[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

func (u BitArray) Up(i int) {
	u.bits[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

func (u BitArray) Down(i int) {
	u.bits[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// Count the bits that are up.
func (u BitArray) Count() (n int) {
	for _, w := range u.bits {
		n += bits.OnesCount(w)
	}
	return
}

// Reset every bit to down.
func (u BitArray) Reset() {
	clear(u.bits)
}
