package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/toonify/internal/convert"
	"github.com/nvandessel/toonify/internal/sanitize"
	"github.com/nvandessel/toonify/internal/store"
	"github.com/nvandessel/toonify/internal/tokens"
	"github.com/nvandessel/toonify/internal/toon"
)

type EncodeInput struct {
	JSON    string `json:"json" jsonschema:"JSON document: an object with one key holding an array of flat records"`
	Compact bool   `json:"compact,omitempty" jsonschema:"omit line breaks between header and rows"`
}

type EncodeOutput struct {
	TOON   string            `json:"toon"`
	Tokens tokens.Comparison `json:"tokens"`
}

type DecodeInput struct {
	TOON string `json:"toon" jsonschema:"TOON document"`
}

type DecodeOutput struct {
	JSON string `json:"json"`
}

type ValidateInput struct {
	TOON string `json:"toon" jsonschema:"TOON document to check"`
}

type EstimateInput struct {
	Text string `json:"text" jsonschema:"text to estimate"`
}

type EstimateOutput struct {
	Tokens int `json:"tokens"`
}

type ConvertFileInput struct {
	Path    string `json:"path" jsonschema:"path to a .json or .toon file"`
	To      string `json:"to" jsonschema:"target format: json or toon"`
	Compact bool   `json:"compact,omitempty" jsonschema:"compact TOON output"`
}

type ConvertFileOutput struct {
	OutputPath string            `json:"output_path"`
	Tokens     tokens.Comparison `json:"tokens"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "toon_encode",
		Description: "Convert a JSON collection into TOON text",
	}, s.handleEncode)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "toon_decode",
		Description: "Convert TOON text into indented JSON. All values decode as strings",
	}, s.handleDecode)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "toon_validate",
		Description: "Check TOON text and list structural problems",
	}, s.handleValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "toon_estimate_tokens",
		Description: "Estimate the LLM token count of a text (one token per four characters)",
	}, s.handleEstimate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "toon_convert_file",
		Description: "Convert a file between JSON and TOON, writing the result next to it",
	}, s.handleConvertFile)
}

func (s *Server) handleEncode(ctx context.Context, req *sdk.CallToolRequest, in EncodeInput) (*sdk.CallToolResult, EncodeOutput, error) {
	out, err := convert.ToTOON(in.JSON, in.Compact)
	if err != nil {
		return nil, EncodeOutput{}, err
	}
	return nil, EncodeOutput{TOON: out, Tokens: tokens.Compare(in.JSON, out)}, nil
}

func (s *Server) handleDecode(ctx context.Context, req *sdk.CallToolRequest, in DecodeInput) (*sdk.CallToolResult, DecodeOutput, error) {
	out, err := convert.ToJSON(in.TOON)
	if err != nil {
		return nil, DecodeOutput{}, err
	}
	return nil, DecodeOutput{JSON: out}, nil
}

func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, in ValidateInput) (*sdk.CallToolResult, toon.Result, error) {
	return nil, toon.Validate(in.TOON), nil
}

func (s *Server) handleEstimate(ctx context.Context, req *sdk.CallToolRequest, in EstimateInput) (*sdk.CallToolResult, EstimateOutput, error) {
	return nil, EstimateOutput{Tokens: tokens.EstimateTokens(in.Text)}, nil
}

func (s *Server) handleConvertFile(ctx context.Context, req *sdk.CallToolRequest, in ConvertFileInput) (*sdk.CallToolResult, ConvertFileOutput, error) {
	path := sanitize.SanitizeFilePath(in.Path)
	if path == "" || path == "." || path == "-" {
		return nil, ConvertFileOutput{}, fmt.Errorf("path is required")
	}
	target, err := convert.ParseFormat(in.To)
	if err != nil {
		return nil, ConvertFileOutput{}, err
	}

	input, err := convert.ReadInput(path, nil)
	if err != nil {
		return nil, ConvertFileOutput{}, err
	}
	result, err := convert.Convert(convert.Request{
		Input:   input,
		From:    convert.DetectFormat(path, input),
		To:      target,
		Compact: in.Compact,
	})
	if err != nil {
		return nil, ConvertFileOutput{}, err
	}

	outputPath := convert.OutputPath(path, target)
	if err := convert.WriteOutput(outputPath, result.Output); err != nil {
		return nil, ConvertFileOutput{}, err
	}

	if s.history != nil {
		_, err := s.history.Record(ctx, store.Conversion{
			InputPath:    path,
			OutputPath:   outputPath,
			From:         string(result.From),
			To:           string(result.To),
			Compact:      in.Compact,
			InputTokens:  result.Tokens.Input,
			OutputTokens: result.Tokens.Output,
		})
		if err != nil {
			slog.Warn("failed to record conversion", "path", path, "error", err)
		}
	}

	return nil, ConvertFileOutput{OutputPath: outputPath, Tokens: result.Tokens}, nil
}
