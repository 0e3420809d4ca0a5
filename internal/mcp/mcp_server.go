// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// NewMCPServer initializes and configures the repointel MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repository Intelligence Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_repository ---
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Run the full structural analysis over a repository snapshot and return suitability-ranked file assessments personalized for a user."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the extracted snapshot JSON file."), mcp.Required()),
		mcp.WithString("skills_path", mcp.Description("Path to the user's skill profile JSON (optional; omit for an unpersonalized run).")),
		mcp.WithString("user", mcp.Description("User ID to personalize for; overrides the skills file entry.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleAnalyzeRepository)

	// --- 2. Tool: get_central_files ---
	s.AddTool(mcp.NewTool("get_central_files",
		mcp.WithDescription("Return the dependency graph summary and the most central files, including circular dependency groups."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the extracted snapshot JSON file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of central files returned.")),
	), h.handleGetCentralFiles)

	// --- 3. Tool: get_contribution_path ---
	s.AddTool(mcp.NewTool("get_contribution_path",
		mcp.WithDescription("Plan an ordered, dependency-respecting contribution path for a user through the repository's most suitable files."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the extracted snapshot JSON file."), mcp.Required()),
		mcp.WithString("skills_path", mcp.Description("Path to the user's skill profile JSON.")),
		mcp.WithString("user", mcp.Description("User ID to personalize for.")),
	), h.handleGetContributionPath)

	// --- 4. Tool: assess_risk ---
	s.AddTool(mcp.NewTool("assess_risk",
		mcp.WithDescription("Rank files by modification risk, blending centrality, complexity and the user's skill gap."),
		mcp.WithString("snapshot_path", mcp.Description("Path to the extracted snapshot JSON file."), mcp.Required()),
		mcp.WithString("skills_path", mcp.Description("Path to the user's skill profile JSON.")),
		mcp.WithString("user", mcp.Description("User ID to personalize for.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleAssessRisk)

	return s
}

// StartMCPServer starts the repointel MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
