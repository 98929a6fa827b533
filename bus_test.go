package mosaic

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) (*EventBus, *listenerTable, *testLogger) {
	t.Helper()
	logger := newTestLogger(t)
	table := newListenerTable()
	return newEventBus(table, logger), table, logger
}

func TestEmitInvokesListenersInRegistrationOrder(t *testing.T) {
	t.Parallel()
	bus, table, _ := newTestBus(t)

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		table.add(EventReady, func(ctx context.Context, data any) (any, error) {
			order = append(order, i)
			return nil, nil
		})
	}

	bus.Emit(context.Background(), EventReady, nil, "test")
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmitIsolatesListenerFailures(t *testing.T) {
	t.Parallel()
	bus, table, logger := newTestBus(t)

	secondRan := false
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		panic("listener boom")
	})
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return nil, errors.New("listener error")
	})
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		secondRan = true
		return nil, nil
	})

	bus.Emit(context.Background(), EventReady, nil, "test")

	assert.True(t, secondRan, "later listener must run despite earlier failures")
	assert.Equal(t, 2, logger.errorCount())
}

func TestEmitWarnsOnUnknownEventName(t *testing.T) {
	t.Parallel()
	bus, _, logger := newTestBus(t)

	bus.Emit(context.Background(), "com.example.custom", nil, "test")

	assert.Equal(t, 1, logger.warnCount())
	// The emission itself is never blocked.
	require.Len(t, bus.History(), 1)
	assert.Equal(t, "com.example.custom", bus.History()[0].Type())
}

func TestFilterWithoutListenersReturnsDataUnchanged(t *testing.T) {
	t.Parallel()
	bus, _, _ := newTestBus(t)

	out, err := bus.Filter(context.Background(), EventReady, 42, "test")
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestFilterChainsStagesSequentially(t *testing.T) {
	t.Parallel()
	bus, table, _ := newTestBus(t)

	const n = 5
	for i := 0; i < n; i++ {
		table.add(EventReady, func(ctx context.Context, data any) (any, error) {
			return data.(int) + 1, nil
		})
	}

	out, err := bus.Filter(context.Background(), EventReady, 10, "test")
	require.NoError(t, err)
	assert.Equal(t, 10+n, out)
}

func TestFilterNilReturnRevertsToOriginal(t *testing.T) {
	t.Parallel()
	bus, table, _ := newTestBus(t)

	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return data.(int) * 100, nil
	})
	// The no-op convention: nil substitutes the pre-pipeline original,
	// not the previous stage's value.
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return nil, nil
	})
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return data.(int) + 1, nil
	})

	out, err := bus.Filter(context.Background(), EventReady, 3, "test")
	require.NoError(t, err)
	assert.Equal(t, 4, out, "third stage must see the original 3, not 300")
}

func TestFilterErrorSkipsStage(t *testing.T) {
	t.Parallel()
	bus, table, logger := newTestBus(t)

	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return data.(int) + 1, nil
	})
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return nil, errors.New("stage boom")
	})
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		return data.(int) + 1, nil
	})

	out, err := bus.Filter(context.Background(), EventReady, 0, "test")
	require.NoError(t, err)
	assert.Equal(t, 2, out, "failed stage is skipped, pipeline continues with the prior value")
	assert.Equal(t, 1, logger.errorCount())
}

func TestFilterRecordsResultUnderDerivedName(t *testing.T) {
	t.Parallel()
	bus, _, _ := newTestBus(t)

	_, err := bus.Filter(context.Background(), EventReady, "x", "test")
	require.NoError(t, err)

	history := bus.History()
	require.Len(t, history, 1)
	assert.Equal(t, EventReady+filterSuffix, history[0].Type())
}

func TestFilterStopsOnContextCancellation(t *testing.T) {
	t.Parallel()
	bus, table, _ := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		cancel()
		return data.(int) + 1, nil
	})
	table.add(EventReady, func(ctx context.Context, data any) (any, error) {
		t.Fatal("stage after cancellation must not run")
		return nil, nil
	})

	out, err := bus.Filter(ctx, EventReady, 0, "test")
	require.Error(t, err)
	assert.Equal(t, 1, out)
}

func TestHistoryEvictsOldestBeyondCapacity(t *testing.T) {
	t.Parallel()
	bus, _, _ := newTestBus(t)

	for i := 0; i <= historyCapacity; i++ {
		bus.Emit(context.Background(), EventReady, i, "test")
	}

	history := bus.History()
	require.Len(t, history, historyCapacity)
	assert.Equal(t, "1", string(history[0].Data()), "the oldest record is evicted")
	assert.Equal(t, fmt.Sprint(historyCapacity), string(history[len(history)-1].Data()))
}

func TestClearHistory(t *testing.T) {
	t.Parallel()
	bus, _, _ := newTestBus(t)

	bus.Emit(context.Background(), EventReady, nil, "test")
	require.NotEmpty(t, bus.History())

	bus.ClearHistory()
	assert.Empty(t, bus.History())
}

func TestEventLoggingMirror(t *testing.T) {
	t.Parallel()
	bus, _, logger := newTestBus(t)
	bus.setEventLogging(true, "bus event")

	bus.Emit(context.Background(), EventReady, nil, "test")

	logger.mu.Lock()
	defer logger.mu.Unlock()
	require.NotEmpty(t, logger.infos)
	assert.Equal(t, "bus event", logger.infos[0])
}
