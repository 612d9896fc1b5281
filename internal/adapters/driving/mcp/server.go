package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MagickCodes/text-aufbereiter/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownGrace bounds how long in-flight HTTP requests may run after
// the context is cancelled.
const shutdownGrace = 5 * time.Second

const serverInstructions = `Prepares German text for speech synthesis. Use prepare_text to clean
text and insert pause tags, and scan_pauses to inspect the pause
directives of a meditation script without changing it.`

// Server exposes the preparation pipeline over the Model Context
// Protocol.
type Server struct {
	ports *Ports
	inner *mcp.Server
}

// NewServer wires the tools and resources onto a fresh MCP server.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	inner := mcp.NewServer(&mcp.Implementation{
		Name:    "aufbereiter",
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	s := &Server{ports: ports, inner: inner}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving over stdio")
	return s.inner.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves over streamable HTTP on addr until the context is
// cancelled, then drains in-flight requests.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.inner
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	logger.Debug("mcp: serving on %s", addr)

	select {
	case err := <-serveErr:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
