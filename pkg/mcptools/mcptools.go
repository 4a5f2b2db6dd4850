// Package mcptools exposes the analyzer as Model Context Protocol tools.
//
// Tools:
//
//	bigo_analyze    {"input": "3n^2 + 2^n"}     full analysis with steps
//	bigo_normalize  {"input": "3n²"}             normalization preview
//	bigo_batch      {"inputs": ["n", "n^2"]}     analyses in input order
//	bigo_tree       {"input": "n^2+1"}           expression tree as Graphviz DOT
//
// Every tool answers with a single JSON text content. A failed analysis is
// returned as a result with "ok": false; only malformed arguments produce a
// tool error.
//
//	srv := mcptools.NewServer(runner)
//	err := srv.Run(ctx, &mcp.StdioTransport{})
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matzehuels/bigo/pkg/analyzer"
	"github.com/matzehuels/bigo/pkg/buildinfo"
	"github.com/matzehuels/bigo/pkg/pipeline"
	"github.com/matzehuels/bigo/pkg/render/treeviz"
)

// Tool names.
const (
	ToolAnalyze   = "bigo_analyze"
	ToolNormalize = "bigo_normalize"
	ToolBatch     = "bigo_batch"
	ToolTree      = "bigo_tree"
)

// NewServer creates an MCP server with all bigo tools registered.
func NewServer(runner *pipeline.Runner) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "bigo", Version: buildinfo.Version}, nil)
	Register(srv, runner)
	return srv
}

// Register adds the bigo tools to srv.
func Register(srv *mcp.Server, runner *pipeline.Runner) {
	t := &tools{runner: runner}
	t.registerAnalyze(srv)
	t.registerNormalize(srv)
	t.registerBatch(srv)
	t.registerTree(srv)
}

// Serve runs the tools over stdin/stdout until ctx is done or the client
// disconnects.
func Serve(ctx context.Context, runner *pipeline.Runner) error {
	return NewServer(runner).Run(ctx, &mcp.StdioTransport{})
}

type tools struct {
	runner *pipeline.Runner
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

var inputProperty = map[string]any{
	"type":        "string",
	"description": "Growth expression in n, e.g. \"t(n)=3n^2 + 5n log(n) + 2^n\"",
}

// handle adapts a typed endpoint to an MCP tool handler.
func handle[Req any](endpoint func(context.Context, *Req) (any, error)) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r Req
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
			}
		}

		resp, err := endpoint(ctx, &r)
		if err != nil {
			return toolError(err), nil
		}

		var text string
		switch v := resp.(type) {
		case string:
			text = v
		default:
			data, err := json.Marshal(resp)
			if err != nil {
				return toolError(fmt.Errorf("marshal: %w", err)), nil
			}
			text = string(data)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

// --- analyze ---

type analyzeReq struct {
	Input  *string `json:"input"`
	Record bool    `json:"record,omitempty"`
}

func (t *tools) registerAnalyze(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolAnalyze,
		Description: "Classify the asymptotic growth of an expression in n and return its Big-O with the derivation steps.",
		InputSchema: inputSchema(map[string]any{
			"input":  inputProperty,
			"record": map[string]any{"type": "boolean", "description": "Save the analysis to history"},
		}, []string{"input"}),
	}
	srv.AddTool(tool, handle(func(ctx context.Context, r *analyzeReq) (any, error) {
		if r.Input == nil {
			return nil, fmt.Errorf("missing argument: input")
		}
		res, hit, err := t.runner.AnalyzeWithCacheInfo(ctx, *r.Input, pipeline.Options{Record: r.Record})
		if err != nil {
			return nil, err
		}
		return pipeline.BatchItem{Input: *r.Input, Result: res.Analysis, Cached: hit}, nil
	}))
}

// --- normalize ---

type normalizeReq struct {
	Input *string `json:"input"`
}

func (t *tools) registerNormalize(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolNormalize,
		Description: "Show how an expression is rewritten before parsing (prefix removal, implicit multiplication, superscripts).",
		InputSchema: inputSchema(map[string]any{"input": inputProperty}, []string{"input"}),
	}
	srv.AddTool(tool, handle(func(_ context.Context, r *normalizeReq) (any, error) {
		if r.Input == nil {
			return nil, fmt.Errorf("missing argument: input")
		}
		return map[string]string{
			"input":      *r.Input,
			"normalized": analyzer.NormalizePreview(*r.Input),
		}, nil
	}))
}

// --- batch ---

type batchReq struct {
	Inputs []string `json:"inputs"`
}

func (t *tools) registerBatch(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolBatch,
		Description: fmt.Sprintf("Analyze up to %d expressions; results keep the input order.", pipeline.MaxBatchSize),
		InputSchema: inputSchema(map[string]any{
			"inputs": map[string]any{"type": "array", "items": inputProperty},
		}, []string{"inputs"}),
	}
	srv.AddTool(tool, handle(func(ctx context.Context, r *batchReq) (any, error) {
		items, err := t.runner.AnalyzeBatch(ctx, r.Inputs, pipeline.Options{})
		if err != nil {
			return nil, err
		}
		return map[string]any{"items": items}, nil
	}))
}

// --- tree ---

type treeReq struct {
	Input string `json:"input"`
}

func (t *tools) registerTree(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolTree,
		Description: "Return the parsed expression tree in Graphviz DOT format.",
		InputSchema: inputSchema(map[string]any{"input": inputProperty}, []string{"input"}),
	}
	srv.AddTool(tool, handle(func(ctx context.Context, r *treeReq) (any, error) {
		dot, err := t.runner.Tree(ctx, r.Input, treeviz.FormatDOT, pipeline.Options{})
		if err != nil {
			return nil, err
		}
		return string(dot), nil
	}))
}
