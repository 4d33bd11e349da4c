package lib

import (
	"context"
	"fmt"

	"github.com/rossyndicate/srst/internal/app/runlist"
)

// ListRuns returns the latest acquisition runs first.
// A zero limit uses the default limit and a negative one lists all the runs.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	svc, err := runlist.NewService(runlist.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	runs, err := svc.Run(ctx, runlist.Request{Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}

	result := make([]Run, len(runs))
	for i, r := range runs {
		result[i] = fromInternalRun(r)
	}
	return result, nil
}
