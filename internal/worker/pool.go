// Package worker provides a parallel planet-tile rendering pool. Elevation
// sampling is pure and shares no state between tiles, so the pool needs no
// coordination beyond handing out tasks.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/AntonZelenin/planetgen/internal/tile"
)

// Renderer renders one planet tile. This matches the signature of
// render.TileRenderer.Render.
type Renderer interface {
	Render(ctx context.Context, coords tile.Coords, force bool) (path string, err error)
}

// Task is a single tile render task.
type Task struct {
	Coords tile.Coords
	Force  bool
}

// Result is the outcome of one task.
type Result struct {
	Task    Task
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Renderer   Renderer
	OnProgress ProgressFunc
	Workers    int
}

// Pool renders tiles in parallel.
type Pool struct {
	renderer   Renderer
	onProgress ProgressFunc
	workers    int
}

// New creates a worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		renderer:   cfg.Renderer,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns their results. It blocks until every
// task has completed or the context is cancelled; cancelled tasks report
// the context error as their result.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
			}
		}
		close(taskCh)
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{Task: task, Err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		path, err := p.renderer.Render(ctx, task.Coords, task.Force)

		results <- Result{
			Task:    task,
			Path:    path,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
