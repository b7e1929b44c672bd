package api

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/autolex/pkg/cache"
	"github.com/hazyhaar/autolex/pkg/kit"
	"github.com/hazyhaar/autolex/pkg/lexicon"
)

// RegisterMCPTools registers the autolex MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *lexicon.Registry, qc *cache.QueryCache, logger *slog.Logger) {
	eps := newEndpoints(reg, qc, logger)

	kit.RegisterMCPTool(srv, mcp.NewTool("expand_query",
		mcp.WithDescription("Expand a vehicle search term (Lao, Thai or Latin script) into every alias that should match it: brand, model, localized names and category members."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search term, e.g. hilux, ไฮลักซ์, pickup")),
		mcp.WithBoolean("strict", mcp.Description("Model-specific expansion: no brand or sibling-model aliases")),
	), eps.expand, decodeExpand)

	kit.RegisterMCPTool(srv, mcp.NewTool("rank_captions",
		mcp.WithDescription("Filter and rank listing captions against a search term. Exact and prefix matches rank above substring and fuzzy matches."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search term")),
		mcp.WithString("captions", mcp.Required(), mcp.Description("Newline-separated captions; ids are 1-based line numbers")),
		mcp.WithBoolean("strict", mcp.Description("Use model-specific expansion")),
	), eps.rank, decodeRank)

	kit.RegisterMCPTool(srv, mcp.NewTool("suggest_terms",
		mcp.WithDescription("Autocomplete suggestions for a partial search term, localized to the script of the input."),
		mcp.WithString("prefix", mcp.Required(), mcp.Description("What the user has typed so far")),
		mcp.WithNumber("limit", mcp.Description("Maximum suggestions (default 10, max 50)")),
	), eps.suggest, decodeSuggest)

	kit.RegisterMCPTool(srv, mcp.NewTool("catalog_stats",
		mcp.WithDescription("Report the active catalog generation, index sizes and skipped entries."),
	), eps.catalog, func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{}, nil
	})
}

func decodeExpand(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	strict, _ := args["strict"].(bool)
	return &kit.MCPDecodeResult{Request: &expandReq{Query: query, Strict: strict}}, nil
}

func decodeRank(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	captions, _ := args["captions"].(string)
	strict, _ := args["strict"].(bool)

	var candidates []lexicon.Candidate
	for i, line := range strings.Split(captions, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		candidates = append(candidates, lexicon.Candidate{ID: strconv.Itoa(i + 1), Caption: line})
	}
	return &kit.MCPDecodeResult{Request: &rankReq{Query: query, Strict: strict, Candidates: candidates}}, nil
}

func decodeSuggest(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	prefix, _ := args["prefix"].(string)
	limit := 0
	switch v := args["limit"].(type) {
	case float64:
		limit = int(v)
	case string:
		limit, _ = strconv.Atoi(v)
	}
	return &kit.MCPDecodeResult{Request: &suggestReq{Prefix: prefix, Limit: limit}}, nil
}
