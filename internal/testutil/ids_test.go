package testutil

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicIDs_Sequence(t *testing.T) {
	ids := NewDeterministicIDs("conv")

	assert.Equal(t, "conv-0001", ids.Next())
	assert.Equal(t, "conv-0002", ids.Next())
	assert.Equal(t, int64(2), ids.Issued())
}

func TestDeterministicIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "id-0001", NewDeterministicIDs("").Next())
}

func TestDeterministicIDs_Reset(t *testing.T) {
	ids := NewDeterministicIDs("r")
	ids.Next()
	ids.Next()

	ids.Reset()
	assert.Equal(t, int64(0), ids.Issued())
	assert.Equal(t, "r-0001", ids.Next())
}

func TestDeterministicIDs_Concurrent(t *testing.T) {
	ids := NewDeterministicIDs("c")

	const workers, perWorker = 8, 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got []string
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := ids.Next()
				mu.Lock()
				got = append(got, id)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, got, workers*perWorker)
	sort.Strings(got)
	for i := 1; i < len(got); i++ {
		assert.NotEqual(t, got[i-1], got[i], "IDs must be unique")
	}
	assert.Equal(t, "c-0400", got[len(got)-1])
}
