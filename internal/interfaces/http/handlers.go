package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/application/compare"
	"github.com/turtacn/molgraph/pkg/errors"
)

// CompareHandler exposes the comparison service over HTTP.
type CompareHandler struct {
	svc compare.Service
}

// NewCompareHandler builds a handler over the given service.
func NewCompareHandler(svc compare.Service) *CompareHandler {
	return &CompareHandler{svc: svc}
}

// searchParams carries the budget and objective fields shared by all search
// endpoints.
type searchParams struct {
	Kind      string `json:"kind,omitempty"`
	TimeoutMS int64  `json:"timeout_ms,omitempty"`
	MaxNodes  int64  `json:"max_nodes,omitempty"`
}

func (p searchParams) options() compare.SearchOptions {
	return compare.SearchOptions{
		Kind:     p.Kind,
		Timeout:  time.Duration(p.TimeoutMS) * time.Millisecond,
		MaxNodes: p.MaxNodes,
	}
}

type pairRequest struct {
	A compare.Input `json:"a"`
	B compare.Input `json:"b"`
	searchParams
}

type scoreRequest struct {
	pairRequest

	// Metric selects the score: "similarity", "distance", or "gls".
	Metric string `json:"metric"`
}

type batchRequest struct {
	Reference  compare.Input   `json:"reference"`
	Candidates []compare.Input `json:"candidates"`
	searchParams
}

type moleculeRequest struct {
	compare.Input

	// Output selects the render format: "svg" (default) or "dot".
	Output string `json:"output,omitempty"`
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		renderError(c, errors.New(errors.ErrCodeBadRequest, "malformed request body: "+err.Error()))
		return false
	}
	return true
}

// Exact handles POST /api/v1/compare/exact.
func (h *CompareHandler) Exact(c *gin.Context) {
	var req pairRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.ExactMatch(c.Request.Context(), req.A, req.B)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Substructure handles POST /api/v1/compare/substructure.  The query goes in
// "a" (SMARTS or a molecule format), the target in "b".
func (h *CompareHandler) Substructure(c *gin.Context) {
	var req pairRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.SubstructureMatch(c.Request.Context(), req.A, req.B)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// MCS handles POST /api/v1/compare/mcs.
func (h *CompareHandler) MCS(c *gin.Context) {
	var req pairRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.CommonSubgraph(c.Request.Context(), req.A, req.B, req.options())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Score handles POST /api/v1/compare/score.
func (h *CompareHandler) Score(c *gin.Context) {
	var req scoreRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	var (
		res *compare.ScoreResult
		err error
	)
	switch req.Metric {
	case "similarity":
		res, err = h.svc.Similarity(ctx, req.A, req.B, req.options())
	case "distance":
		res, err = h.svc.Distance(ctx, req.A, req.B, req.options())
	case "", "gls":
		res, err = h.svc.GLS(ctx, req.A, req.B, req.options())
	default:
		renderError(c, errors.New(errors.ErrCodeBadRequest, "unknown metric "+req.Metric))
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Batch handles POST /api/v1/compare/batch.
func (h *CompareHandler) Batch(c *gin.Context) {
	var req batchRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Candidates) == 0 {
		renderError(c, errors.New(errors.ErrCodeBadRequest, "candidates must not be empty"))
		return
	}
	res, err := h.svc.GLSBatch(c.Request.Context(), req.Reference, req.Candidates, req.options())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Inspect handles GET /api/v1/molecules/inspect with text and format query
// parameters.
func (h *CompareHandler) Inspect(c *gin.Context) {
	in := compare.Input{
		Text:   c.Query("text"),
		Format: c.Query("format"),
	}
	if in.Text == "" {
		renderError(c, errors.New(errors.ErrCodeBadRequest, "text query parameter is required"))
		return
	}
	info, err := h.svc.Inspect(c.Request.Context(), in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Render handles POST /api/v1/molecules/render.
func (h *CompareHandler) Render(c *gin.Context) {
	var req moleculeRequest
	if !bindJSON(c, &req) {
		return
	}
	switch req.Output {
	case "dot":
		dot, err := h.svc.RenderDOT(c.Request.Context(), req.Input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/vnd.graphviz", []byte(dot))
	case "", "svg":
		svg, err := h.svc.RenderSVG(c.Request.Context(), req.Input)
		if err != nil {
			renderError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", svg)
	default:
		renderError(c, errors.New(errors.ErrCodeBadRequest, "unknown output format "+req.Output))
	}
}

// Healthz handles GET /healthz.
func (h *CompareHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
