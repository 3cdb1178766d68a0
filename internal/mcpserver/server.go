// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes docstamp tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/docstamp/internal/frontmatter"
	"github.com/halvard/docstamp/internal/index"
	"github.com/halvard/docstamp/internal/resolve"
	"github.com/halvard/docstamp/internal/stamp"
	"github.com/halvard/docstamp/internal/storage"
)

// Server wraps the MCP server with docstamp tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	db    *index.DB
}

// New creates a new MCP server with all docstamp tools registered.
func New(store storage.Provider, db *index.DB) *Server {
	s := &Server{store: store, db: db}

	s.mcp = server.NewMCPServer(
		"Docstamp",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("stamp_docs",
		mcp.WithDescription("Inject front matter into every Markdown doc that lacks it. "+
			"Returns the list of updated files."),
	), s.stampDocs)

	s.mcp.AddTool(mcp.NewTool("search_docs",
		mcp.WithDescription("Full-text search through doc metadata and content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocs)

	s.mcp.AddTool(mcp.NewTool("read_doc",
		mcp.WithDescription("Read the full content of a Markdown doc, front matter included."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the doc (e.g. guides/auth.md)")),
	), s.readDoc)

	s.mcp.AddTool(mcp.NewTool("list_docs",
		mcp.WithDescription("List all docs or docs in a specific folder."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listDocs)

	s.mcp.AddTool(mcp.NewTool("preview_metadata",
		mcp.WithDescription("Show the metadata record and front matter block that would be "+
			"stamped into a doc, without writing anything."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path of the doc to preview")),
	), s.previewMetadata)

	// Resource: front matter format contract.
	s.mcp.AddResource(
		mcp.NewResource("docstamp://frontmatter-format", "Front Matter Format Contract",
			mcp.WithResourceDescription("Canonical front matter block format stamped into every doc."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) stampDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := stamp.Run(s.store, io.Discard, time.Now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := ""
	if f, err := req.RequireString("folder"); err == nil {
		folder = f
	}

	metas, err := s.store.List(folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) previewMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	if frontmatter.Has(data) {
		return mcp.NewToolResultText("doc already has front matter; nothing would be stamped"), nil
	}

	rec := resolve.Resolve(path, data)
	recJSON, _ := json.MarshalIndent(rec, "", "  ")
	block := frontmatter.Render(rec, time.Now())
	return mcp.NewToolResultText(string(recJSON) + "\n\n" + block), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "docstamp://frontmatter-format",
			MIMEType: "text/markdown",
			Text:     FrontmatterFormatContract,
		},
	}, nil
}
