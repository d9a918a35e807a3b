package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewSpecGateMCPServer creates a new MCP server with all SpecGate tools and
// resources registered. The projectPath is the root directory of the
// generated project to verify.
func NewSpecGateMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"specgate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
