package store

import (
	"math"

	"github.com/spaolacci/murmur3"

	"github.com/tferdous17/rbkv/utils"
)

// DefaultFalsePositiveRate is used when no rate is configured.
const DefaultFalsePositiveRate = 0.01

// BloomFilter answers "definitely absent" for keys that were never added. Keys cannot be removed,
// so a deleted key keeps answering "maybe present".
type BloomFilter struct {
	capacity   uint32
	p          float64
	count      uint32
	bitSetSize uint64
	bitSet     []bool
	hashCount  uint32
}

func NewBloomFilter(numElements uint32, p float64) *BloomFilter {
	bf := &BloomFilter{p: p}
	bf.InitBloomFilterAttrs(numElements)
	return bf
}

func (bf *BloomFilter) InitBloomFilterAttrs(numElements uint32) {
	if numElements == 0 {
		numElements = 1
	}
	if bf.p <= 0 || bf.p >= 1 {
		bf.p = DefaultFalsePositiveRate
	}
	bf.capacity = numElements
	bf.count = 0
	bf.calculateBitSetSize(numElements)
	bf.initBitArray()
}

func (bf *BloomFilter) calculateBitSetSize(numElements uint32) {
	// proven math formulas to calculate optimal bloom filter params
	bf.bitSetSize = uint64(math.Ceil(-1 * float64(numElements) * math.Log(bf.p) / math.Pow(math.Log(2), 2)))
	bf.hashCount = uint32(math.Ceil((float64(bf.bitSetSize) / float64(numElements)) * math.Log(2)))
}

func (bf *BloomFilter) initBitArray() {
	bf.bitSet = make([]bool, bf.bitSetSize)
}

func (bf *BloomFilter) Add(key string) {
	data := []byte(key)
	for seed := uint32(0); seed < bf.hashCount; seed++ {
		bf.bitSet[bf.position(data, seed)] = true
	}
	bf.count++
}

// MightContain only reads the bit set, so concurrent callers are safe as long as nobody Adds.
func (bf *BloomFilter) MightContain(key string) bool {
	// ! Bloom filter is probabilistic, so there's a chance to get false positives
	data := []byte(key)
	for seed := uint32(0); seed < bf.hashCount; seed++ {
		if !bf.bitSet[bf.position(data, seed)] {
			return false
		}
	}
	return true
}

// position uses one murmur3 seed per hash function.
func (bf *BloomFilter) position(data []byte, seed uint32) uint64 {
	return murmur3.Sum64WithSeed(data, seed) % bf.bitSetSize
}

// Full reports whether more keys were added than the filter was sized for.
func (bf *BloomFilter) Full() bool {
	return bf.count >= bf.capacity
}

func (bf *BloomFilter) Capacity() uint32 {
	return bf.capacity
}

// Reset clears every bit and resizes the filter for numElements keys.
func (bf *BloomFilter) Reset(numElements uint32) {
	bf.InitBloomFilterAttrs(numElements)
}

func (bf *BloomFilter) Debug() {
	utils.LogCYAN("Bit Set Size: %d", bf.bitSetSize)
	utils.LogCYAN("Hash Count: %d", bf.hashCount)
	utils.LogCYAN("Keys Added: %d / %d", bf.count, bf.capacity)
}
