package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/core/algo"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// configForRequest clones the base config and applies the common
// per-request overrides shared by every tool.
func (h *toolHandler) configForRequest(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	cfg.SnapshotPath = request.GetString("snapshot_path", "")
	if p := request.GetString("skills_path", ""); p != "" {
		cfg.SkillsPath = p
	}
	if u := request.GetString("user", ""); u != "" {
		cfg.UserID = u
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg
}

func (h *toolHandler) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configForRequest(request)

	result, err := core.AnalyzeForTools(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := struct {
		Files       []schema.FileAssessment `json:"files"`
		Diagnostics schema.RunDiagnostics   `json:"diagnostics"`
	}{
		Files:       algo.RankBySuitability(result.Files, cfg.ResultLimit),
		Diagnostics: result.Diagnostics,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCentralFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configForRequest(request)

	result, err := core.AnalyzeForTools(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := struct {
		Graph        schema.GraphSummary     `json:"graph"`
		CentralFiles []schema.FileAssessment `json:"central_files"`
	}{
		Graph:        result.Graph,
		CentralFiles: algo.RankByCentrality(result.Files, cfg.ResultLimit),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetContributionPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configForRequest(request)

	result, err := core.AnalyzeForTools(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("path planning failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Path, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAssessRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configForRequest(request)

	result, err := core.AnalyzeForTools(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("risk assessment failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(algo.RankByRisk(result.Files, cfg.ResultLimit), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
