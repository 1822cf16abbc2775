package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mazemaster/internal/core"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/dfs"
	"mazemaster/internal/solve"
	"mazemaster/internal/store"
	"mazemaster/internal/store/memory"
)

func label(s string) coord.Coordinate {
	c, err := coord.Decode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func walls(labels ...string) []coord.Coordinate {
	out := make([]coord.Coordinate, len(labels))
	for i, l := range labels {
		out[i] = label(l)
	}
	return out
}

func testMaze(fp string) *core.Maze {
	return &core.Maze{
		Fingerprint: fp,
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("A1"),
		Walls:       walls("A3", "B3"),
	}
}

func TestTriggerInlineModeSolvesSynchronously(t *testing.T) {
	st := memory.New()
	sol := &core.Solution{ID: "s1", Fingerprint: "fp1", Status: core.StatusNew}
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	d := New(st, 0, 1)
	ch, err := d.Trigger(testMaze("fp1"), sol, solve.ModeMin, dfs.NewRand(1))
	require.NoError(t, err)

	result := <-ch
	require.NoError(t, result.Err)
	require.NotEmpty(t, result.Path)
	require.Equal(t, core.StatusSolvedMin, sol.Status)
}

func TestTriggerAlreadyProcessingIsRejected(t *testing.T) {
	st := memory.New()
	sol := &core.Solution{ID: "s1", Fingerprint: "fp2", Status: core.StatusProcessing}
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	d := New(st, 2, 2)
	_, err := d.Trigger(testMaze("fp2"), sol, solve.ModeMin, dfs.NewRand(1))
	require.ErrorIs(t, err, ErrInFlight)
}

func TestTriggerAdmissionSemaphoreRejectsOverflow(t *testing.T) {
	st := memory.New()
	d := New(st, 1, 1)

	// Saturate the admission semaphore directly so the rejection branch
	// is exercised deterministically instead of racing a real worker.
	d.admission <- struct{}{}

	sol := &core.Solution{ID: "s1", Fingerprint: "fp-overflow", Status: core.StatusNew}
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	_, err := d.Trigger(testMaze("fp-overflow"), sol, solve.ModeMin, dfs.NewRand(1))
	require.ErrorIs(t, err, ErrTooManyInFlight)

	// Rejection must also release the in-flight fingerprint claim so a
	// later retry is not permanently blocked by this attempt.
	require.True(t, d.tryMarkInFlight(sol.Fingerprint))
}

// tryMarkInFlight is the compare-and-set primitive Trigger relies on to
// guarantee that concurrent requests for the same fingerprint admit at
// most one solve; exercise it directly under real goroutine
// concurrency rather than racing against job completion timing.
func TestTryMarkInFlightAdmitsExactlyOneConcurrentWinner(t *testing.T) {
	st := memory.New()
	d := New(st, 3, 3)

	const attempts = 20
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- d.tryMarkInFlight("fp-dedup")
		}()
	}
	wg.Wait()
	close(wins)

	var won int
	for w := range wins {
		if w {
			won++
		}
	}
	require.Equal(t, 1, won)
}

func TestAwaitTimesOutWithoutCancellingWorker(t *testing.T) {
	ch := make(chan Result)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	_, err := Await(ctx, ch)
	require.ErrorIs(t, err, ErrStillProcessing)
	require.GreaterOrEqual(t, time.Since(start), ResultTimeout)
}
