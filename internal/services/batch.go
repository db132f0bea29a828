package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

type BatchResult struct {
	Name   string
	Output *Output
	Err    error
}

// BatchRenderer renders independent requests in parallel. A failed request
// does not stop the others.
type BatchRenderer struct {
	service *CaptionService
	workers int
	logger  *log.Logger
}

func NewBatchRenderer(service *CaptionService, workers int, logger *log.Logger) *BatchRenderer {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &BatchRenderer{service: service, workers: workers, logger: logger}
}

// RenderAll returns one result per request, in request order.
func (b *BatchRenderer) RenderAll(ctx context.Context, reqs []Request) []BatchResult {
	results := make([]BatchResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, req := range reqs {
		g.Go(func() error {
			out, err := b.service.Render(ctx, req)
			if err != nil {
				b.logger.Printf("render %s failed: %v", req.Name, err)
			}
			results[i] = BatchResult{Name: req.Name, Output: out, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
