// Package mcp provides an MCP (Model Context Protocol) server for prettymarkup.
// This lets agents render JSON-LD documents and web pages as triple trees
// through MCP tools instead of the CLI.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matzehuels/prettymarkup/pkg/buildinfo"
	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/jsonld"
	"github.com/matzehuels/prettymarkup/pkg/pipeline"
	"github.com/matzehuels/prettymarkup/pkg/render"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// Tool names.
const (
	ToolRender  = "render_jsonld"
	ToolExtract = "extract_jsonld"
)

// Fetcher retrieves remote pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Server wraps the MCP server with the render pipeline.
type Server struct {
	mcpServer *server.MCPServer
	runner    *pipeline.Runner
	fetcher   Fetcher
	defaults  func(*pipeline.Options)
}

// Config holds server configuration.
type Config struct {
	// Fetcher loads pages given by URL. Nil disables the url parameter.
	Fetcher Fetcher
	// Defaults fills unset render options, e.g. from the config file.
	Defaults func(*pipeline.Options)
}

// New creates an MCP server backed by runner.
func New(runner *pipeline.Runner, cfg Config) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"prettymarkup",
			buildinfo.Version,
			server.WithToolCapabilities(false),
		),
		runner:   runner,
		fetcher:  cfg.Fetcher,
		defaults: cfg.Defaults,
	}
	s.registerRenderTool()
	s.registerExtractTool()
	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerRenderTool() {
	tool := mcp.NewTool(ToolRender,
		mcp.WithDescription("Render a JSON-LD document, or the single JSON-LD block of an HTML page, as an indented tree of subject-predicate-object rows."),
		mcp.WithString("input",
			mcp.Description("JSON-LD text or HTML containing one application/ld+json script block"),
		),
		mcp.WithString("url",
			mcp.Description("Fetch the document from this URL instead of passing input"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default: text)"),
			mcp.Enum(render.FormatText, render.FormatJSON, render.FormatHTML, render.FormatDOT),
		),
		mcp.WithString("base_url",
			mcp.Description("Base IRI for relative identifiers"),
		),
		mcp.WithString("target_type",
			mcp.Description("Highlight entities of this rdf:type IRI"),
		),
		mcp.WithString("target_property",
			mcp.Description("Highlight rows with this predicate IRI"),
		),
		mcp.WithBoolean("id_rows",
			mcp.Description("Emit an @id row for every named entity"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleRender)
}

func (s *Server) registerExtractTool() {
	tool := mcp.NewTool(ToolExtract,
		mcp.WithDescription("List the application/ld+json script blocks of an HTML page."),
		mcp.WithString("input",
			mcp.Description("HTML text"),
		),
		mcp.WithString("url",
			mcp.Description("Fetch the page from this URL instead of passing input"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleExtract)
}

// Tool handlers

func (s *Server) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	input, err := s.input(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	format, _ := args["format"].(string)
	if format == "" {
		format = render.FormatText
	}
	opts := pipeline.Options{
		Input:   input,
		Formats: []string{format},
	}
	opts.BaseURL, _ = args["base_url"].(string)
	opts.IDRows, _ = args["id_rows"].(bool)

	typeURI, _ := args["target_type"].(string)
	propURI, _ := args["target_property"].(string)
	switch {
	case typeURI != "" && propURI != "":
		return mcp.NewToolResultError("target_type and target_property are mutually exclusive"), nil
	case typeURI != "":
		opts.Target = tree.Target{Kind: tree.TargetEntity, URI: typeURI}
	case propURI != "":
		opts.Target = tree.Target{Kind: tree.TargetProperty, URI: propURI}
	}

	if s.defaults != nil {
		s.defaults(&opts)
	}

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", errors.GetCode(err), errors.UserMessage(err))), nil
	}
	return mcp.NewToolResultText(string(result.Artifacts[format])), nil
}

func (s *Server) handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := s.input(ctx, req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	blocks, err := jsonld.ExtractScripts(input)
	if err != nil {
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}
	if len(blocks) == 0 {
		return mcp.NewToolResultText("no JSON-LD script blocks found"), nil
	}

	var b strings.Builder
	for i, block := range blocks {
		fmt.Fprintf(&b, "--- block %d ---\n%s\n", i+1, strings.TrimSpace(block))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// input returns the "input" argument, or the body of "url".
func (s *Server) input(ctx context.Context, args map[string]any) (string, error) {
	input, _ := args["input"].(string)
	url, _ := args["url"].(string)

	switch {
	case input != "" && url != "":
		return "", errors.New(errors.ErrCodeInvalidInput, "input and url are mutually exclusive")
	case input != "":
		return input, nil
	case url == "":
		return "", errors.New(errors.ErrCodeInvalidInput, "input or url parameter is required")
	case s.fetcher == nil:
		return "", errors.New(errors.ErrCodeUnsupported, "fetching URLs is disabled")
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
