package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/cruciblehq/cruxfile/internal"
	"github.com/cruciblehq/cruxfile/internal/build"
	"github.com/cruciblehq/cruxfile/internal/protocol"
)

// Handles a resolve command.
//
// Receives descriptor text and a build context path, and returns the
// resolved descriptor with its image configuration. The build context must
// be named explicitly; the daemon's own working directory is never used.
func (s *Server) handleResolve(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ResolveRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	if req.Root == "" {
		err := fmt.Errorf("%w: resolve request has no build context root", ErrServer)
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	opts := build.Options{
		Text:     req.Descriptor,
		Root:     req.Root,
		Platform: req.Platform,
		Output:   req.Output,
		Known:    s.known,
	}

	if req.CheckImage {
		resolver, err := s.imageResolver()
		if err != nil {
			s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
			return
		}
		opts.Resolver = resolver
	}

	result, err := build.Run(ctx, opts)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.resolutions++
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.ResolveResult{
		Descriptor: result.Descriptor,
		CopyRules:  result.CopyRules,
		Config:     result.Config,
		Digest:     result.Digest,
		Output:     result.Output,
	})
}

// Handles a status command.
func (s *Server) handleStatus(conn net.Conn) {
	s.mu.Lock()
	resolutions := s.resolutions
	s.mu.Unlock()

	uptime := time.Since(s.startedAt).Truncate(time.Second)

	s.respond(conn, protocol.CmdOK, &protocol.StatusResult{
		Running:     true,
		Version:     internal.VersionString(),
		Pid:         os.Getpid(),
		Uptime:      uptime.String(),
		Resolutions: resolutions,
	})
}

// Handles a shutdown command.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)
	slog.Info("shutdown requested")

	go func() {
		s.Stop()
	}()
}
