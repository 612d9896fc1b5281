package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// PrepareInput is the input schema for the prepare_text tool.
type PrepareInput struct {
	Text      string  `json:"text" jsonschema:"the raw text to prepare for speech synthesis"`
	Mode      string  `json:"mode,omitempty" jsonschema:"processing mode: standard or meditation (default standard)"`
	Chapters  string  `json:"chapters,omitempty" jsonschema:"chapter handling: keep, remove or spoken"`
	Sentence  bool    `json:"sentence_pauses,omitempty" jsonschema:"insert pauses after sentences too"`
	Phonetic  bool    `json:"phonetic,omitempty" jsonschema:"apply phonetic respellings"`
	Paragraph float64 `json:"paragraph_pause_seconds,omitempty" jsonschema:"paragraph pause duration in seconds"`
}

// PrepareOutput is the output schema for the prepare_text tool.
type PrepareOutput struct {
	Transcript     string        `json:"transcript"`
	Chunks         int           `json:"chunks"`
	FallbackChunks int           `json:"fallback_chunks"`
	Pauses         []PauseOutput `json:"pauses,omitempty"`
}

// ScanInput is the input schema for the scan_pauses tool.
type ScanInput struct {
	Text string `json:"text" jsonschema:"the script text to scan for pause directives"`
}

// ScanOutput is the output schema for the scan_pauses tool.
type ScanOutput struct {
	Pauses   []PauseOutput `json:"pauses"`
	Warnings []string      `json:"warnings,omitempty"`
	Count    int           `json:"count"`
}

// PauseOutput represents a single detected pause directive.
type PauseOutput struct {
	Line             int     `json:"line"`
	Instruction      string  `json:"instruction"`
	SuggestedSeconds float64 `json:"suggested_seconds"`
	Tag              string  `json:"tag"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "prepare_text",
		Description: "Prepare German text for speech synthesis: clean it and insert pause tags",
	}, s.handlePrepare)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "scan_pauses",
		Description: "Scan a meditation script for pause directive lines without modifying it",
	}, s.handleScan)
}

// handlePrepare handles the prepare_text tool invocation. The local
// rule-based rewrite is used; an MCP client is itself a language model
// and does not need a second one behind the tool.
func (s *Server) handlePrepare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PrepareInput,
) (*mcp.CallToolResult, PrepareOutput, error) {
	opts := domain.DefaultCleaningOptions()
	if input.Mode != "" {
		opts.Mode = domain.ProcessingMode(input.Mode)
	}
	if input.Chapters != "" {
		opts.ChapterStyle = domain.ChapterStyle(input.Chapters)
	}
	if input.Sentence {
		opts.Pauses.SentenceEnabled = true
	}
	if input.Phonetic {
		opts.PhoneticCorrection = true
	}
	if input.Paragraph > 0 {
		opts.Pauses.ParagraphSeconds = input.Paragraph
	}

	doc := domain.Document{Source: "mcp", Text: input.Text}
	result, err := s.ports.Preparer.Prepare(ctx, doc, opts)
	if err != nil {
		return nil, PrepareOutput{}, err
	}

	transcript := result.Transcript
	if opts.Normalised().Mode == domain.ModeMeditation {
		// No interactive review over MCP; the suggestions are applied
		// as detected and also reported so the client can adjust.
		transcript = s.ports.Preparer.ApplyPauses(transcript, result.Pauses)
	}

	return nil, PrepareOutput{
		Transcript:     transcript,
		Chunks:         result.Chunks,
		FallbackChunks: result.FallbackChunks,
		Pauses:         toPauseOutputs(result.Pauses),
	}, nil
}

// handleScan handles the scan_pauses tool invocation.
func (s *Server) handleScan(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ScanInput,
) (*mcp.CallToolResult, ScanOutput, error) {
	pauses, warnings := s.ports.Preparer.ScanPauses(input.Text)

	return nil, ScanOutput{
		Pauses:   toPauseOutputs(pauses),
		Warnings: warnings,
		Count:    len(pauses),
	}, nil
}

func toPauseOutputs(pauses []domain.DetectedPause) []PauseOutput {
	if len(pauses) == 0 {
		return nil
	}
	out := make([]PauseOutput, len(pauses))
	for i, p := range pauses {
		out[i] = PauseOutput{
			Line:             p.Line,
			Instruction:      p.Instruction,
			SuggestedSeconds: p.Suggested,
			Tag:              domain.FormatPauseTag(p.Suggested),
		}
	}
	return out
}
