package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitecache/internal/adapters/telemetry"
)

type collector struct {
	mu    sync.Mutex
	lines []string
}

func (c *collector) add(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, lines...)
}

func (c *collector) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestBatchProcessor_FlushOnSize(t *testing.T) {
	var c collector

	// Size limit 8 bytes; a long time limit keeps the ticker out of the way.
	bp := telemetry.NewBatchProcessor(8, time.Hour, c.add)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("one\n"))
	require.NoError(t, err)
	assert.Empty(t, c.get())

	// Write flushes synchronously once the limit is reached.
	_, err = bp.Write([]byte("two\nthr"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, c.get())
}

func TestBatchProcessor_HoldsPartialLine(t *testing.T) {
	var c collector

	bp := telemetry.NewBatchProcessor(100, time.Hour, c.add)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("Number of variants"))
	require.NoError(t, err)
	bp.Flush()
	assert.Empty(t, c.get())

	_, err = bp.Write([]byte(" read: 10\n"))
	require.NoError(t, err)
	bp.Flush()
	assert.Equal(t, []string{"Number of variants read: 10"}, c.get())
}

func TestBatchProcessor_FlushOnTime(t *testing.T) {
	flushed := make(chan []string, 1)

	bp := telemetry.NewBatchProcessor(100, 20*time.Millisecond, func(lines []string) {
		select {
		case flushed <- lines:
		default:
		}
	})
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("tick\n"))
	require.NoError(t, err)

	select {
	case lines := <-flushed:
		assert.Equal(t, []string{"tick"}, lines)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for flush")
	}
}

func TestBatchProcessor_CloseFlushesEverything(t *testing.T) {
	var c collector

	bp := telemetry.NewBatchProcessor(100, time.Hour, c.add)

	_, err := bp.Write([]byte("done\n\npending"))
	require.NoError(t, err)
	assert.Empty(t, c.get())

	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())
	assert.Equal(t, []string{"done", "pending"}, c.get())

	_, err = bp.Write([]byte("late\n"))
	require.ErrorIs(t, err, telemetry.ErrBatcherClosed)
}

func TestBatchProcessor_ThreadSafety(t *testing.T) {
	var c collector

	bp := telemetry.NewBatchProcessor(16, time.Millisecond, c.add)

	var wg sync.WaitGroup
	const workers, iterations = 10, 100
	for range workers {
		wg.Go(func() {
			for j := range iterations {
				_, _ = bp.Write([]byte("a\n"))
				if j%10 == 0 {
					bp.Flush()
				}
			}
		})
	}

	wg.Wait()
	require.NoError(t, bp.Close())
	assert.Len(t, c.get(), workers*iterations)
}
