// Package lib provides a Go SDK for running srst acquisitions programmatically.
//
// This package allows applications to submit tile acquisitions and follow their
// exports without shelling out to the srst CLI binary. It is useful for
// scheduling many tiles from a single process.
//
// # Quick Start
//
// Create a client, acquire a tile and follow its exports:
//
//	client, err := lib.New(ctx, lib.Config{
//	    RemoteURL:   "https://gateway.example.org",
//	    RemoteToken: os.Getenv("SRST_REMOTE_TOKEN"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.Acquire(ctx, lib.AcquireOpts{
//	    ConfigFile: "/data/yaml/config.yml",
//	    Tile:       "026028",
//	})
//
//	// Later on.
//	client.SyncExports(ctx, nil)
//	exports, _ := client.ListExports(ctx, &lib.ListExportsOpts{Tile: "026028"})
//
// # Engines
//
// The SDK supports two engine types:
//
//   - [EngineRemote]: The processing gateway HTTP API. Requires [Config].RemoteURL.
//   - [EngineFake]: In-memory fake engine for unit testing. No real infrastructure
//     needed. Set [Config].Engine to [EngineFake] and optionally [Config].FakeScenes.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource with the same name already exists.
//   - [ErrNotValid]: Invalid input (e.g. a malformed tile or settings file).
//
// # Testing
//
// Use [EngineFake] and a temporary database path to write tests without
// real infrastructure:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DBPath: filepath.Join(t.TempDir(), "test.db"),
//	    Engine: lib.EngineFake,
//	})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. The underlying
// storage uses SQLite with WAL mode.
package lib
