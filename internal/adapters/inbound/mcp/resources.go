package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
)

// registerResources registers all SpecGate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. specgate://config - effective gate configuration
	s.AddResource(
		mcplib.NewResource(
			"specgate://config",
			"Gate Configuration",
			mcplib.WithResourceDescription("Effective gate configuration for the project, defaults merged with overrides"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. specgate://policy/{env} - environment policy (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"specgate://policy/{env}",
			"Environment Policy",
			mcplib.WithTemplateDescription("Promotion thresholds for a specific environment"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handlePolicyResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "specgate://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handlePolicyResource(projectPath string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		env, ok := request.Params.Arguments["env"].(string)
		if !ok || env == "" {
			return nil, fmt.Errorf("environment name is required")
		}

		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		policy, err := cfg.PolicyFor(env)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(policy, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling policy: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
