package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreAndProbe(t *testing.T) {
	table := New(1000)
	table.Store(42, 7.5, 4)

	score, ok := table.Probe(42, 4)
	assert.True(t, ok)
	assert.Equal(t, 7.5, score)
}

func TestProbe_RejectsShallowerRequiredDepth(t *testing.T) {
	table := New(1000)
	table.Store(42, 7.5, 2)

	_, ok := table.Probe(42, 4)
	assert.False(t, ok, "an entry searched to a shallower depth than required must miss")
}

func TestProbe_Miss(t *testing.T) {
	table := New(1000)
	_, ok := table.Probe(99, 1)
	assert.False(t, ok)
}

func TestStore_ReplacesOnlyWithEqualOrDeeperDepth(t *testing.T) {
	table := New(1000)
	table.Store(1, 10, 5)
	table.Store(1, 20, 3) // shallower: must not replace

	score, ok := table.Probe(1, 3)
	assert.True(t, ok)
	assert.Equal(t, 10.0, score)
}

func TestEvictionKeepsTableBounded(t *testing.T) {
	table := New(32) // one entry per shard
	table.NewAge()
	for i := uint64(0); i < 200; i++ {
		table.Store(i, float64(i), 1)
	}
	assert.LessOrEqual(t, table.Len(), 64)
}

func TestConcurrentAccess(t *testing.T) {
	table := New(10_000)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(worker int) {
			for j := 0; j < 500; j++ {
				h := uint64(worker*1000 + j)
				table.Store(h, float64(j), j%10)
				table.Probe(h, 0)
			}
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
