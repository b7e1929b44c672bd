package api

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hazyhaar/autolex/pkg/cache"
	"github.com/hazyhaar/autolex/pkg/kit"
	"github.com/hazyhaar/autolex/pkg/lexicon"
)

const (
	maxCandidates   = 500
	defaultSuggest  = 10
	maxSuggestLimit = 50
)

// Shared request/response types used by both HTTP and MCP transports.

type expandReq struct {
	Query  string
	Strict bool
}

type expandResponse struct {
	Query      string   `json:"query"`
	Normalized string   `json:"normalized"`
	Strict     bool     `json:"strict"`
	Generation uint64   `json:"generation"`
	Aliases    []string `json:"aliases"`
}

type rankReq struct {
	Query      string              `json:"query"`
	Strict     bool                `json:"strict"`
	Candidates []lexicon.Candidate `json:"candidates"`
}

type rankedMatch struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	Kind    string `json:"kind"`
	Exact   bool   `json:"exact"`
	Length  int    `json:"length"`
	Alias   string `json:"alias"`
}

type rankResponse struct {
	Query   string        `json:"query"`
	Aliases int           `json:"aliases"`
	Matches []rankedMatch `json:"matches"`
}

type suggestReq struct {
	Prefix string
	Limit  int
}

type suggestResponse struct {
	Prefix      string               `json:"prefix"`
	Suggestions []lexicon.Suggestion `json:"suggestions"`
}

type catalogResponse struct {
	Generation  uint64        `json:"generation"`
	BuiltAt     time.Time     `json:"built_at"`
	Stats       lexicon.Stats `json:"stats"`
	Diagnostics int           `json:"diagnostics"`
	Cache       cache.Stats   `json:"cache"`
}

// engine binds the registry and the query cache behind the endpoints.
type engine struct {
	reg   *lexicon.Registry
	cache *cache.QueryCache
}

// expand resolves query through the cache. Entries are keyed by the
// normalized query, so the literal alias is replaced with the caller's text.
func (e *engine) expand(snap *lexicon.Snapshot, query string, strict bool) (string, []string) {
	normalized := lexicon.Normalize(query)
	op := "expand"
	if strict {
		op = "expand_strict"
	}
	key := cache.Key(op, snap.Generation, normalized)
	if hit, ok := e.cache.Get(key); ok {
		return hit.Normalized, withLiteral(hit.Aliases, query)
	}

	var aliases []string
	if strict {
		aliases = snap.Index.ExpandWithoutBrandAliases(query)
	} else {
		aliases = snap.Index.Expand(query)
	}
	e.cache.Put(key, cache.Entry{Normalized: normalized, Aliases: aliases})
	return normalized, aliases
}

func withLiteral(aliases []string, query string) []string {
	out := make([]string, len(aliases))
	copy(out, aliases)
	if len(out) > 0 {
		out[0] = query
	}
	return out
}

func expandEndpoint(e *engine) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*expandReq)
		snap := e.reg.Current()
		normalized, aliases := e.expand(snap, req.Query, req.Strict)
		return expandResponse{
			Query:      req.Query,
			Normalized: normalized,
			Strict:     req.Strict,
			Generation: snap.Generation,
			Aliases:    aliases,
		}, nil
	}
}

func rankEndpoint(e *engine) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*rankReq)
		if len(req.Candidates) > maxCandidates {
			return nil, fmt.Errorf("too many candidates (max %d, got %d)", maxCandidates, len(req.Candidates))
		}
		_, aliases := e.expand(e.reg.Current(), req.Query, req.Strict)

		ranked := lexicon.Rank(req.Candidates, aliases)
		matches := make([]rankedMatch, len(ranked))
		for i, r := range ranked {
			matches[i] = rankedMatch{
				ID:      r.ID,
				Caption: r.Caption,
				Kind:    r.Score.Kind.String(),
				Exact:   r.Score.Exact(),
				Length:  r.Score.Length,
				Alias:   r.Score.Alias,
			}
		}
		return rankResponse{Query: req.Query, Aliases: len(aliases), Matches: matches}, nil
	}
}

func suggestEndpoint(e *engine) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*suggestReq)
		limit := clampLimit(req.Limit)

		snap := e.reg.Current()
		key := cache.Key("suggest", snap.Generation, lexicon.Normalize(req.Prefix), strconv.Itoa(limit))
		if hit, ok := e.cache.Get(key); ok {
			return suggestResponse{Prefix: req.Prefix, Suggestions: hit.Suggestions}, nil
		}
		suggestions := snap.Index.Suggest(req.Prefix, limit)
		if suggestions == nil {
			suggestions = []lexicon.Suggestion{}
		}
		e.cache.Put(key, cache.Entry{Normalized: lexicon.Normalize(req.Prefix), Suggestions: suggestions})
		return suggestResponse{Prefix: req.Prefix, Suggestions: suggestions}, nil
	}
}

func catalogEndpoint(e *engine) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		snap := e.reg.Current()
		return catalogResponse{
			Generation:  snap.Generation,
			BuiltAt:     snap.BuiltAt,
			Stats:       snap.Index.Stats(),
			Diagnostics: len(snap.Diagnostics),
			Cache:       e.cache.Stats(),
		}, nil
	}
}

func clampLimit(n int) int {
	if n <= 0 {
		return defaultSuggest
	}
	if n > maxSuggestLimit {
		return maxSuggestLimit
	}
	return n
}

// endpoints wraps every action with request ids and logging.
type endpoints struct {
	expand  kit.Endpoint
	rank    kit.Endpoint
	suggest kit.Endpoint
	catalog kit.Endpoint
}

func newEndpoints(reg *lexicon.Registry, qc *cache.QueryCache, logger *slog.Logger) endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	e := &engine{reg: reg, cache: qc}
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return endpoints{
		expand:  wrap("expand", expandEndpoint(e)),
		rank:    wrap("rank", rankEndpoint(e)),
		suggest: wrap("suggest", suggestEndpoint(e)),
		catalog: wrap("catalog", catalogEndpoint(e)),
	}
}
