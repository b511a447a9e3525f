package bot

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPendingSet_BlocksSecondSubmit(t *testing.T) {
	p := newPendingSet()

	require.True(t, p.begin(1))
	require.False(t, p.begin(1), "same chat must not start a second mutation")
	require.True(t, p.begin(2), "other chats are independent")

	p.end(1)
	require.True(t, p.begin(1), "chat is idle again after end")
}

func TestPendingSet_ConcurrentTapsAdmitOne(t *testing.T) {
	p := newPendingSet()

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.begin(42) {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), admitted.Load())
}
