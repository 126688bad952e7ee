package mapreduce

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/keyheat/pkg/analytics"
	"github.com/dtnitsch/keyheat/pkg/storage"
)

// Job is one log file to tokenize. Index is its position in the input.
type Job struct {
	Index int
	Path  string
}

// Result holds the outcome of a processed job.
type Result struct {
	Index  int
	Path   string
	Tokens []string
	Counts *analytics.Counter[string]
	Error  error
}

// Map tokenizes a single log file.
func Map(s *storage.Storage, path string) ([]string, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return analytics.Tokenize(string(data)), nil
}

// Reduce merges per-file counters. First-seen order follows the argument order.
func Reduce(intermediate []*analytics.Counter[string]) *analytics.Counter[string] {
	return analytics.Merge(intermediate...)
}

// MapFiles tokenizes paths on a pool of workers. Results come back in input
// order regardless of completion order. The returned error is non-nil when
// any file failed or ctx was cancelled; successful results are still returned.
func MapFiles(ctx context.Context, logger *slog.Logger, s *storage.Storage, paths []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("Starting map phase", "file_count", len(paths), "workers", workers)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(paths))
	results := make(chan Result, len(paths))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, s, &wg, jobs, results)
	}

	for i, path := range paths {
		jobs <- Job{Index: i, Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Debug("All map workers finished")

	ordered := make([]Result, len(paths))
	var runErr error
	for result := range results {
		ordered[result.Index] = result
		if result.Error != nil && runErr == nil {
			runErr = fmt.Errorf("one or more files failed: %w", result.Error)
		}
	}
	return ordered, runErr
}

func worker(ctx context.Context, id int, logger *slog.Logger, s *storage.Storage, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		result := Result{Index: job.Index, Path: job.Path}
		if err := ctx.Err(); err != nil {
			result.Error = err
			results <- result
			continue
		}

		if stats, err := s.GetFileStats(job.Path); err == nil {
			logger.Debug("Worker started job", "worker_id", id, "path", job.Path, "size_bytes", stats.SizeBytes)
		}
		tokens, err := Map(s, job.Path)
		if err != nil {
			logger.Error("Error reading log", "worker_id", id, "path", job.Path, "error", err)
			result.Error = err
			results <- result
			continue
		}

		result.Tokens = tokens
		result.Counts = analytics.CountTokens(tokens)
		results <- result
		logger.Debug("Worker finished job", "worker_id", id, "path", job.Path, "tokens", len(tokens))
	}
}

// Segments returns the token stream of each successful result, in order.
func Segments(results []Result) [][]string {
	segments := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			segments = append(segments, r.Tokens)
		}
	}
	return segments
}

// Counters returns the counter of each successful result, in order.
func Counters(results []Result) []*analytics.Counter[string] {
	counters := make([]*analytics.Counter[string], 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			counters = append(counters, r.Counts)
		}
	}
	return counters
}
