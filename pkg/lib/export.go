package lib

import (
	"context"
	"fmt"

	"github.com/rossyndicate/srst/internal/app/exportlist"
	"github.com/rossyndicate/srst/internal/app/exportsync"
	"github.com/rossyndicate/srst/internal/app/status"
	"github.com/rossyndicate/srst/internal/engine"
)

// ListExports returns the ledger exports, latest first.
// Pass nil opts to list all exports.
func (c *Client) ListExports(ctx context.Context, opts *ListExportsOpts) ([]Export, error) {
	svc, err := exportlist.NewService(exportlist.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := exportlist.Request{}
	if opts != nil {
		req.Tile = opts.Tile
		req.States = toInternalStates(opts.States)
	}

	exports, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalExportList(exports), nil
}

// GetExport returns an export by name or ID.
// Pass nil opts for defaults. Returns [ErrNotFound] if the export does not exist.
func (c *Client) GetExport(ctx context.Context, nameOrID string, opts *GetExportOpts) (*Export, error) {
	refresh := opts != nil && opts.Refresh

	var eng engine.Engine
	if refresh {
		var err error
		eng, err = c.newEngine(c.cfg.RemoteProject)
		if err != nil {
			return nil, mapError(fmt.Errorf("could not create engine: %w", err))
		}
	}

	svc, err := status.NewService(status.ServiceConfig{
		Repository: c.repo,
		Engine:     eng,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	e, err := svc.Run(ctx, status.Request{NameOrID: nameOrID, Refresh: refresh})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalExport(*e)
	return &result, nil
}

// SyncExports refreshes the state of the non terminal ledger exports with the engine.
// Pass nil opts to sync all exports.
func (c *Client) SyncExports(ctx context.Context, opts *SyncExportsOpts) (*SyncResult, error) {
	eng, err := c.newEngine(c.cfg.RemoteProject)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create engine: %w", err))
	}

	svc, err := exportsync.NewService(exportsync.ServiceConfig{
		Engine:     eng,
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := exportsync.Request{}
	if opts != nil {
		req.Tile = opts.Tile
	}

	res, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return &SyncResult{
		Checked: res.Checked,
		Updated: fromInternalExportList(res.Updated),
		Missing: res.Missing,
	}, nil
}
