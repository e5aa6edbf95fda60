package tracker_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/UnknownOlympus/tally/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Parallel()
	set := tracker.NewAddressSet()

	assert.True(t, set.Add("10.0.0.1"), "first insert should report a new entry")
	assert.False(t, set.Add("10.0.0.1"), "repeated insert should not report a new entry")
	assert.True(t, set.Add("10.0.0.2"))
	assert.Equal(t, int64(2), set.Count())
}

func TestAddIdempotentCount(t *testing.T) {
	t.Parallel()
	set := tracker.NewAddressSet()

	for i := 0; i < 1000; i++ {
		set.Add("192.168.1.1")
	}
	assert.Equal(t, int64(1), set.Count())
}

// TestAddConcurrent inserts a shared multiset of addresses from several
// goroutines in randomized order and checks that the final count equals the
// number of distinct addresses, independent of interleaving.
func TestAddConcurrent(t *testing.T) {
	t.Parallel()

	const (
		distinct   = 250
		numWorkers = 8
	)

	addresses := make([]string, 0, distinct)
	for i := 0; i < distinct; i++ {
		addresses = append(addresses, fmt.Sprintf("192.168.%d.%d", i/256, i%256))
	}

	set := tracker.NewAddressSet()
	var firstInserts sync.Map
	var wgr sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		w := w
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			rnd := rand.New(rand.NewSource(int64(w)))
			shuffled := append([]string(nil), addresses...)
			rnd.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			for _, addr := range shuffled {
				if set.Add(addr) {
					// Exactly one worker may win the insert for any address.
					_, loaded := firstInserts.LoadOrStore(addr, w)
					assert.False(t, loaded, "address %s reported as new twice", addr)
				}
			}
		}()
	}
	wgr.Wait()

	require.Equal(t, int64(distinct), set.Count())
}
