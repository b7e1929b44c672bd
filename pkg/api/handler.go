package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hazyhaar/autolex/pkg/cache"
	"github.com/hazyhaar/autolex/pkg/kit"
	"github.com/hazyhaar/autolex/pkg/lexicon"
)

const maxRankBody = 256 * 1024

// NewRouter returns an http.Handler with all autolex API routes.
func NewRouter(reg *lexicon.Registry, qc *cache.QueryCache, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{endpoints: newEndpoints(reg, qc, logger), reg: reg}

	mux.HandleFunc("GET /v1/expand", h.handleExpand)
	mux.HandleFunc("GET /v1/rank", methodNotAllowed) // rank takes a body
	mux.HandleFunc("POST /v1/rank", h.handleRank)
	mux.HandleFunc("GET /v1/suggest", h.handleSuggest)
	mux.HandleFunc("GET /v1/catalog", h.handleCatalog)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(kit.HTTPContext(mux))
}

type handler struct {
	endpoints
	reg *lexicon.Registry
}

// --- expand ---

func (h *handler) handleExpand(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		writeError(w, http.StatusBadRequest, "missing q")
		return
	}
	resp, err := h.expand(r.Context(), &expandReq{
		Query:  q.Get("q"),
		Strict: parseBool(q.Get("strict")),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- rank ---

func (h *handler) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRankBody)
	var req rankReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.rank(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- suggest ---

func (h *handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	resp, err := h.suggest(r.Context(), &suggestReq{Prefix: q.Get("q"), Limit: limit})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- catalog ---

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalog(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status     string `json:"status"`
	Generation uint64 `json:"generation"`
	Aliases    int    `json:"aliases"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.reg.Current()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Generation: snap.Generation,
		Aliases:    snap.Index.Stats().Aliases,
	})
}

// --- helpers ---

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
