package cli

import (
	"context"
	"log/slog"

	"github.com/cruciblehq/cruxfile/internal/server"
)

// Represents the 'cruxfile start' command.
type StartCmd struct{}

// Executes the start command.
//
// Starts the daemon on a Unix domain socket and blocks until the context
// is cancelled (e.g. via SIGINT or SIGTERM) or a client requests shutdown.
func (c *StartCmd) Run(ctx context.Context) error {
	cfg, err := serverConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("cruxfile daemon is running")

	done := make(chan struct{})
	go func() {
		srv.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		return srv.Stop()
	case <-done:
		return nil
	}
}
