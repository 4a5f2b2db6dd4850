package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matzehuels/bigo/pkg/pipeline"
)

var testMCPImpl = &mcp.Implementation{Name: "bigo-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := NewServer(pipeline.NewRunner(nil, nil, nil, nil))

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() {
		session.Close()
		cancel()
	})
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

// mcpCallFails reports whether a call was rejected, either by the protocol
// layer or as a tool error.
func mcpCallFails(t *testing.T, session *mcp.ClientSession, name string, args any) bool {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	return err != nil || result.IsError
}

func TestListTools(t *testing.T) {
	session := mcpSession(t)
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, want := range []string{ToolAnalyze, ToolNormalize, ToolBatch, ToolTree} {
		if !got[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestMCP_Analyze(t *testing.T) {
	session := mcpSession(t)

	tests := []struct {
		input string
		ok    bool
		bigO  string
		code  string
	}{
		{"t(n)=3n^2 + 5n*log(n) + 2^n", true, "O(2^n)", ""},
		{"n^3 + 100n^2 + 10n + 1", true, "O(n^3)", ""},
		{"2n", true, "O(n)", ""},
		{"t(n)=3n^2+", false, "", "ParseError"},
		{"", false, "", "EmptyOrInvalidInput"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			text := mcpCallTool(t, session, ToolAnalyze, map[string]any{"input": tt.input})
			var resp struct {
				Input string   `json:"input"`
				OK    bool     `json:"ok"`
				BigO  string   `json:"bigO"`
				Code  string   `json:"code"`
				Steps []string `json:"steps"`
			}
			if err := json.Unmarshal([]byte(text), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.OK != tt.ok || resp.BigO != tt.bigO || resp.Code != tt.code {
				t.Errorf("got %+v", resp)
			}
			if resp.Input != tt.input {
				t.Errorf("input = %q", resp.Input)
			}
			if tt.ok && len(resp.Steps) == 0 {
				t.Error("steps missing")
			}
		})
	}
}

func TestMCP_AnalyzeMissingInput(t *testing.T) {
	session := mcpSession(t)
	if !mcpCallFails(t, session, ToolAnalyze, map[string]any{}) {
		t.Error("missing input should fail")
	}
}

func TestMCP_Normalize(t *testing.T) {
	session := mcpSession(t)
	text := mcpCallTool(t, session, ToolNormalize, map[string]any{"input": "t(n)=3n²+2ⁿ"})
	var resp map[string]string
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["normalized"] != "3*n^2+2^n" {
		t.Errorf("normalized = %q", resp["normalized"])
	}
}

func TestMCP_Batch(t *testing.T) {
	session := mcpSession(t)
	text := mcpCallTool(t, session, ToolBatch, map[string]any{"inputs": []string{"n", "n^", "n^2 log(n)"}})
	var resp struct {
		Items []pipeline.BatchItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	want := []string{"O(n)", "", "O(n^2 log n)"}
	if len(resp.Items) != len(want) {
		t.Fatalf("items = %d", len(resp.Items))
	}
	for i, it := range resp.Items {
		if it.BigO != want[i] {
			t.Errorf("item %d BigO = %q, want %q", i, it.BigO, want[i])
		}
	}

	if !mcpCallFails(t, session, ToolBatch, map[string]any{"inputs": []string{}}) {
		t.Error("empty batch should fail")
	}
}

func TestMCP_Tree(t *testing.T) {
	session := mcpSession(t)
	text := mcpCallTool(t, session, ToolTree, map[string]any{"input": "n^2+1"})
	if !strings.HasPrefix(text, "digraph G {") {
		t.Errorf("tree = %s", text)
	}
	if !mcpCallFails(t, session, ToolTree, map[string]any{"input": "n^2+"}) {
		t.Error("unparseable tree input should fail")
	}
}
