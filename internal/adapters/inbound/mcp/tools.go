package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/adapters/outbound/gitinfo"
	"github.com/specgate/specgate/internal/adapters/outbound/irloader"
	"github.com/specgate/specgate/internal/adapters/outbound/parser"
	"github.com/specgate/specgate/internal/adapters/outbound/runtime"
	"github.com/specgate/specgate/internal/adapters/outbound/scanner"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
)

// registerTools registers all SpecGate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. specgate_gate
	s.AddTool(
		mcplib.NewTool("specgate_gate",
			mcplib.WithDescription("Run the full quality gate and return the promotion verdict as JSON"),
			mcplib.WithString("env", mcplib.Description("Target environment: dev, staging or production (default: dev)")),
			mcplib.WithString("level", mcplib.Description("Check level: fast or heavy (default: fast)")),
			mcplib.WithString("base_url", mcplib.Description("Base URL of the running candidate, required for heavy level")),
			mcplib.WithString("ir", mcplib.Description("Path to the API surface IR file")),
			mcplib.WithString("behavior", mcplib.Description("Path to the behavior IR file")),
			mcplib.WithString("manifest", mcplib.Description("Path to the slot manifest file")),
			mcplib.WithString("transitions", mcplib.Description("Path to the entity transitions file")),
		),
		handleGate(projectPath),
	)

	// 2. specgate_check
	s.AddTool(
		mcplib.NewTool("specgate_check",
			mcplib.WithDescription("Run fast static checks (syntax, regression patterns, dead code, imports) and return findings as JSON"),
		),
		handleCheck(projectPath),
	)

	// 3. specgate_coverage
	s.AddTool(
		mcplib.NewTool("specgate_coverage",
			mcplib.WithDescription("Validate endpoint coverage against the API surface IR and return missing/extra endpoints"),
			mcplib.WithString("ir",
				mcplib.Required(),
				mcplib.Description("Path to the API surface IR file"),
			),
		),
		handleCoverage(projectPath),
	)

	// 4. specgate_scenarios
	s.AddTool(
		mcplib.NewTool("specgate_scenarios",
			mcplib.WithDescription("Generate behavior scenarios from the behavior IR and optional transitions, without executing them"),
			mcplib.WithString("behavior", mcplib.Description("Path to the behavior IR file")),
			mcplib.WithString("transitions", mcplib.Description("Path to the entity transitions file")),
		),
		handleScenarios(),
	)

	// 5. specgate_guardrail
	s.AddTool(
		mcplib.NewTool("specgate_guardrail",
			mcplib.WithDescription("Check touched files against the slot manifest and return violations"),
			mcplib.WithString("manifest",
				mcplib.Required(),
				mcplib.Description("Path to the slot manifest file"),
			),
			mcplib.WithString("touched", mcplib.Description("Comma-separated touched file list; defaults to worktree status")),
		),
		handleGuardrail(projectPath),
	)
}

// newFastServices creates the outbound adapters and the static services.
func newFastServices() (*application.FastCheckService, *application.CoverageService) {
	sc := scanner.New()
	par := parser.New()
	cfg := config.New()
	return application.NewFastCheckService(sc, par, cfg, nil),
		application.NewCoverageService(sc, par, cfg, nil)
}

func handleGate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		opts := application.GateOptions{
			Environment: "dev",
			ProjectPath: projectPath,
		}
		if env, ok := args["env"].(string); ok && env != "" {
			opts.Environment = env
		}
		if level, ok := args["level"].(string); ok && level != "" {
			opts.Level = level
		}
		if baseURL, ok := args["base_url"].(string); ok {
			opts.BaseURL = baseURL
		}

		loader := irloader.New()
		var err error
		if p, ok := args["ir"].(string); ok && p != "" {
			if opts.Surface, err = loader.LoadAPISurface(p); err != nil {
				return errorResult(fmt.Sprintf("loading API surface: %v", err)), nil
			}
		}
		if p, ok := args["behavior"].(string); ok && p != "" {
			if opts.Behavior, err = loader.LoadBehavior(p); err != nil {
				return errorResult(fmt.Sprintf("loading behavior IR: %v", err)), nil
			}
		}
		if p, ok := args["manifest"].(string); ok && p != "" {
			if opts.Manifest, err = loader.LoadSlotManifest(p); err != nil {
				return errorResult(fmt.Sprintf("loading slot manifest: %v", err)), nil
			}
		}
		if p, ok := args["transitions"].(string); ok && p != "" {
			if opts.Transitions, err = loader.LoadTransitions(p); err != nil {
				return errorResult(fmt.Sprintf("loading transitions: %v", err)), nil
			}
		}

		fastSvc, coverageSvc := newFastServices()
		gateSvc := application.NewGateService(
			fastSvc,
			coverageSvc,
			application.NewScenarioService(),
			application.NewGuardrailService(gitinfo.New(), nil),
			config.New(),
			func(baseURL string, cfg domain.Config) domain.ServiceClient {
				return runtime.New(baseURL, cfg)
			},
			nil,
		)

		report, err := gateSvc.Run(ctx, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("gate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		fastSvc, _ := newFastServices()
		result, err := fastSvc.Check(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleCoverage(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		irPath, err := request.RequireString("ir")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		surface, err := irloader.New().LoadAPISurface(irPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading API surface: %v", err)), nil
		}

		_, coverageSvc := newFastServices()
		result, err := coverageSvc.Validate(projectPath, surface)
		if err != nil {
			return errorResult(fmt.Sprintf("coverage failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleScenarios() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		loader := irloader.New()

		var behavior *domain.BehaviorIR
		var transitions []domain.EntityTransitions
		var err error

		if p, ok := args["behavior"].(string); ok && p != "" {
			if behavior, err = loader.LoadBehavior(p); err != nil {
				return errorResult(fmt.Sprintf("loading behavior IR: %v", err)), nil
			}
		}
		if p, ok := args["transitions"].(string); ok && p != "" {
			if transitions, err = loader.LoadTransitions(p); err != nil {
				return errorResult(fmt.Sprintf("loading transitions: %v", err)), nil
			}
		}
		if behavior == nil && len(transitions) == 0 {
			return errorResult("provide behavior and/or transitions"), nil
		}

		scenarios := application.NewScenarioService().Generate(behavior, transitions)
		return jsonResult(scenarios)
	}
}

func handleGuardrail(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		manifestPath, err := request.RequireString("manifest")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		manifest, err := irloader.New().LoadSlotManifest(manifestPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading slot manifest: %v", err)), nil
		}

		var touched []string
		if touchedStr, ok := request.GetArguments()["touched"].(string); ok && touchedStr != "" {
			touched = splitAndTrim(touchedStr)
		}

		svc := application.NewGuardrailService(gitinfo.New(), nil)
		reports, err := svc.Enforce(projectPath, *manifest, touched)
		if err != nil {
			return errorResult(fmt.Sprintf("guardrail failed: %v", err)), nil
		}
		return jsonResult(reports)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
