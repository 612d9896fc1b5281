package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for preparer resources.
const uriScheme = "aufbereiter://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing presets.
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "presets",
		Name:        "presets",
		Description: "Saved cleaning presets",
		MIMEType:    "application/json",
	}, s.handlePresetsResource)

	// Static resource for listing stored sessions.
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "Stored preparation sessions",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	// Template for a stored transcript.
	s.inner.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{key}",
		Name:        "session-transcript",
		Description: "Transcript of a stored preparation session",
		MIMEType:    "text/plain",
	}, s.handleTranscriptResource)
}

// handlePresetsResource returns the list of saved preset names.
func (s *Server) handlePresetsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names := []string{}
	if s.ports.Presets != nil {
		listed, err := s.ports.Presets.List()
		if err != nil {
			return nil, fmt.Errorf("listing presets: %w", err)
		}
		if listed != nil {
			names = listed
		}
	}

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling presets: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSessionsResource returns metadata for all stored sessions.
func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sessions == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	infos, err := s.ports.Sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	type sessionInfo struct {
		Key    string `json:"key"`
		Chunks int    `json:"chunks"`
		Size   int    `json:"size_bytes"`
	}

	out := make([]sessionInfo, len(infos))
	for i, info := range infos {
		out[i] = sessionInfo{Key: info.Key, Chunks: info.Chunks, Size: info.SizeBytes}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sessions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTranscriptResource returns the transcript of one session.
func (s *Server) handleTranscriptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sessions == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	key := extractSessionKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Sessions.Load(ctx, key)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     result.Transcript,
		}},
	}, nil
}

// extractSessionKey parses aufbereiter://sessions/{key}.
func extractSessionKey(uri string) string {
	prefix := uriScheme + "sessions/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
