package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AntonZelenin/planetgen/internal/tile"
)

// mockRenderer simulates tile rendering for testing
type mockRenderer struct {
	delay     time.Duration
	failTiles map[string]bool // tiles that should fail
	callCount atomic.Int32
}

func (m *mockRenderer) Render(ctx context.Context, coords tile.Coords, force bool) (string, error) {
	m.callCount.Add(1)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(m.delay):
	}

	if m.failTiles != nil && m.failTiles[coords.String()] {
		return "", errors.New("simulated failure")
	}

	return "/tmp/" + coords.String() + ".png", nil
}

func TestPool_BasicExecution(t *testing.T) {
	r := &mockRenderer{delay: 10 * time.Millisecond}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	tasks := []Task{
		{Coords: tile.NewCoords(3, 1, 2)},
		{Coords: tile.NewCoords(3, 1, 3)},
		{Coords: tile.NewCoords(3, 2, 2)},
	}

	results := pool.Run(context.Background(), tasks)

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	for _, res := range results {
		if res.Err != nil {
			t.Errorf("Unexpected error for %s: %v", res.Task.Coords.String(), res.Err)
		}
		if res.Path == "" {
			t.Errorf("Expected path for %s, got empty", res.Task.Coords.String())
		}
	}

	if r.callCount.Load() != int32(len(tasks)) {
		t.Errorf("Expected %d render calls, got %d", len(tasks), r.callCount.Load())
	}
}

func TestPool_Parallelism(t *testing.T) {
	// Use a longer delay to ensure parallelism is tested
	r := &mockRenderer{delay: 50 * time.Millisecond}

	pool := New(Config{
		Workers:  4,
		Renderer: r,
	})

	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = Task{Coords: tile.NewCoords(4, uint32(i), 5)}
	}

	start := time.Now()
	results := pool.Run(context.Background(), tasks)
	elapsed := time.Since(start)

	// With 4 workers and 8 tasks at 50ms each, should take ~100ms (2 batches)
	// Allow some margin for overhead
	maxExpected := 200 * time.Millisecond
	if elapsed > maxExpected {
		t.Errorf("Expected parallel execution in ~100ms, took %v", elapsed)
	}

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	t.Logf("Processed %d tasks with %d workers in %v", len(tasks), 4, elapsed)
}

func TestPool_ErrorHandling(t *testing.T) {
	failTile := "z3_x1_y3"
	r := &mockRenderer{
		delay:     10 * time.Millisecond,
		failTiles: map[string]bool{failTile: true},
	}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	tasks := []Task{
		{Coords: tile.NewCoords(3, 1, 2)},
		{Coords: tile.NewCoords(3, 1, 3)}, // This one should fail
		{Coords: tile.NewCoords(3, 2, 2)},
	}

	results := pool.Run(context.Background(), tasks)

	// Should still get all results
	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	// Count successes and failures
	var successCount, failCount int
	for _, res := range results {
		if res.Err != nil {
			failCount++
			if res.Task.Coords.String() != failTile {
				t.Errorf("Unexpected failure for %s", res.Task.Coords.String())
			}
		} else {
			successCount++
		}
	}

	if successCount != 2 {
		t.Errorf("Expected 2 successes, got %d", successCount)
	}
	if failCount != 1 {
		t.Errorf("Expected 1 failure, got %d", failCount)
	}
}

func TestPool_Cancellation(t *testing.T) {
	r := &mockRenderer{delay: 100 * time.Millisecond}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{Coords: tile.NewCoords(4, uint32(i), 5)}
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel after a short time
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, tasks)
	elapsed := time.Since(start)

	// Should return early due to cancellation
	if elapsed > 200*time.Millisecond {
		t.Errorf("Expected early cancellation, took %v", elapsed)
	}

	// Some results may have errors due to cancellation
	var cancelledCount int
	for _, res := range results {
		if res.Err != nil && errors.Is(res.Err, context.Canceled) {
			cancelledCount++
		}
	}

	t.Logf("Completed with %d results (%d cancelled) in %v", len(results), cancelledCount, elapsed)
}

func TestPool_ProgressCallback(t *testing.T) {
	r := &mockRenderer{delay: 10 * time.Millisecond}

	var progressCalls atomic.Int32
	var lastCompleted, lastTotal int

	pool := New(Config{
		Workers:  2,
		Renderer: r,
		OnProgress: func(completed, total, failed int) {
			progressCalls.Add(1)
			lastCompleted = completed
			lastTotal = total
		},
	})

	tasks := []Task{
		{Coords: tile.NewCoords(3, 1, 2)},
		{Coords: tile.NewCoords(3, 1, 3)},
		{Coords: tile.NewCoords(3, 2, 2)},
	}

	pool.Run(context.Background(), tasks)

	// Should have received progress callbacks
	if progressCalls.Load() == 0 {
		t.Error("Expected progress callbacks, got none")
	}

	// Final callback should show all completed
	if lastCompleted != len(tasks) {
		t.Errorf("Expected lastCompleted=%d, got %d", len(tasks), lastCompleted)
	}
	if lastTotal != len(tasks) {
		t.Errorf("Expected lastTotal=%d, got %d", len(tasks), lastTotal)
	}
}

func TestPool_EmptyTasks(t *testing.T) {
	r := &mockRenderer{}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	results := pool.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty tasks, got %d", len(results))
	}

	if r.callCount.Load() != 0 {
		t.Errorf("Expected 0 render calls for empty tasks, got %d", r.callCount.Load())
	}
}
