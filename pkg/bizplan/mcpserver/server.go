// Package mcpserver exposes the conversion pipeline as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ukaji3/bizplan-go/internal/config"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/docx"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/templates"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server holds the tool handlers and their shared dependencies.
type Server struct {
	cfg        *config.Config
	normalizer *normalize.Normalizer
	mcp        *server.MCPServer
}

// New creates the server with every tool and resource registered.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Load()
	}
	s := &Server{cfg: cfg, normalizer: normalize.Default}

	s.mcp = server.NewMCPServer(
		"bizplan",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	s.mcp.AddTool(convertTool(), s.handleConvert)
	s.mcp.AddTool(specialCharsTool(), s.handleSpecialChars)
	s.mcp.AddTool(optimizeImageTool(), s.handleOptimizeImage)
	s.mcp.AddTool(analyzeTool(), s.handleAnalyze)
	s.mcp.AddTool(planTool(), s.handleGeneratePlan)

	for _, k := range templates.Kinds() {
		s.mcp.AddResource(templateResource(k), s.handleTemplate)
	}
	s.mcp.AddResource(charsGuideResource(), s.handleCharsGuide)

	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves requests on stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) generator(includeTOC bool) *docx.Generator {
	return docx.NewGenerator(s.normalizer, docx.Options{
		IncludeTOC: &includeTOC,
		Font:       s.cfg.Font,
	})
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("❌ 오류 발생: " + err.Error())
}
