// Package fileproc runs the analysis pipeline over many files in
// parallel.
package fileproc

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/panbanda/augur/pkg/analyzer/quality"
	"github.com/panbanda/augur/pkg/models"
)

// DefaultWorkerMultiplier scales worker count relative to CPU count.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file completes, success or not.
type ProgressFunc func()

// ErrorFunc is called for each file that fails to analyze.
type ErrorFunc func(path string, err error)

// Map analyzes files in parallel and returns the successful results
// ordered by path. Each task gets its own engine because the underlying
// parser is not safe for concurrent use. Failed files are reported via
// onError and skipped; cancellation stops scheduling of new files.
func Map(
	ctx context.Context,
	files []string,
	engineOpts []quality.Option,
	onProgress ProgressFunc,
	onError ErrorFunc,
) []*models.AnalysisResult {
	if len(files) == 0 {
		return nil
	}

	maxWorkers := runtime.NumCPU() * DefaultWorkerMultiplier
	results := make([]*models.AnalysisResult, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, path := range files {
		p.Go(func(ctx context.Context) error {
			defer func() {
				if onProgress != nil {
					onProgress()
				}
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			source, err := os.ReadFile(path)
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return nil
			}

			engine := quality.New(engineOpts...)
			defer engine.Close()

			result, err := engine.Analyze(ctx, path, source)
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return nil
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results
}
