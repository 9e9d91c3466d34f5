// Package compare provides the application-level service that orchestrates
// molecule parsing, matching, common-subgraph search, and scoring.  It is the
// single entry point used by both the CLI and the HTTP interface.
package compare

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/molgraph/internal/adapters/ident"
	"github.com/turtacn/molgraph/internal/adapters/props"
	"github.com/turtacn/molgraph/internal/adapters/render"
	"github.com/turtacn/molgraph/internal/adapters/sdf"
	"github.com/turtacn/molgraph/internal/adapters/smiles"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/internal/domain/match"
	"github.com/turtacn/molgraph/internal/domain/mcs"
	"github.com/turtacn/molgraph/internal/domain/metric"
	rediscache "github.com/turtacn/molgraph/internal/infrastructure/database/redis"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgraph/pkg/errors"
)

// Service defines the comparison operations exposed to the interfaces layer.
type Service interface {
	ExactMatch(ctx context.Context, a, b Input) (*MatchResult, error)
	SubstructureMatch(ctx context.Context, pattern, target Input) (*MatchResult, error)
	CommonSubgraph(ctx context.Context, a, b Input, opts SearchOptions) (*CommonResult, error)
	Similarity(ctx context.Context, a, b Input, opts SearchOptions) (*ScoreResult, error)
	Distance(ctx context.Context, a, b Input, opts SearchOptions) (*ScoreResult, error)
	GLS(ctx context.Context, a, b Input, opts SearchOptions) (*ScoreResult, error)
	GLSBatch(ctx context.Context, reference Input, candidates []Input, opts SearchOptions) (*BatchResult, error)
	Inspect(ctx context.Context, in Input) (*MoleculeInfo, error)
	RenderDOT(ctx context.Context, in Input) (string, error)
	RenderSVG(ctx context.Context, in Input) ([]byte, error)
}

type service struct {
	cfg      config.EngineConfig
	logger   logging.Logger
	metrics  *prom.AppMetrics
	graphs   *lru.Cache[string, *chem.Graph]
	results  rediscache.Cache
	graphCap int
}

// Option customizes Service construction.
type Option func(*service)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *prom.AppMetrics) Option {
	return func(s *service) { s.metrics = m }
}

// WithResultCache attaches a shared cache for pairwise scores.  Only
// exhaustive results are cached; budget-degraded scores stay local.
func WithResultCache(c rediscache.Cache) Option {
	return func(s *service) { s.results = c }
}

// WithGraphCacheSize overrides the capacity of the parsed-graph LRU cache.
func WithGraphCacheSize(n int) Option {
	return func(s *service) { s.graphCap = n }
}

// NewService builds a comparison service over the given engine configuration.
func NewService(cfg config.EngineConfig, log logging.Logger, opts ...Option) (Service, error) {
	s := &service{
		cfg:      cfg,
		logger:   log.Named("compare"),
		graphCap: config.DefaultGraphLRUSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	graphs, err := lru.New[string, *chem.Graph](s.graphCap)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build graph cache")
	}
	s.graphs = graphs
	return s, nil
}

// normalizeFormat maps aliases onto the canonical format names.
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "smiles":
		return "smiles", nil
	case "smarts":
		return "smarts", nil
	case "mol", "sdf", "molfile":
		return "mol", nil
	default:
		return "", errors.New(errors.ErrCodeFormatUnknown, fmt.Sprintf("unknown molecule format %q", format))
	}
}

// parseGraph parses in.Text as a molecule graph, caching the result keyed by
// format and text.  The atom cap is enforced on every path, cached included.
func (s *service) parseGraph(in Input) (*chem.Graph, error) {
	format, err := normalizeFormat(in.Format)
	if err != nil {
		return nil, err
	}
	if format == "smarts" {
		return nil, errors.New(errors.ErrCodeMatchInvalidInput, "a SMARTS pattern is not a molecule; use it as the query of a substructure match")
	}

	key := format + "\x00" + in.Text
	if g, ok := s.graphs.Get(key); ok {
		if s.metrics != nil {
			prom.RecordCacheAccess(s.metrics, "graph_lru", true)
		}
		return g, nil
	}
	if s.metrics != nil {
		prom.RecordCacheAccess(s.metrics, "graph_lru", false)
	}

	start := time.Now()
	var g *chem.Graph
	switch format {
	case "smiles":
		g, err = smiles.Parse(in.Text)
	case "mol":
		g, err = sdf.Parse(in.Text)
	}
	if s.metrics != nil {
		atoms := 0
		if g != nil {
			atoms = g.VertexCount()
		}
		prom.RecordParse(s.metrics, format, atoms, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	if s.cfg.MaxAtoms > 0 && g.VertexCount() > s.cfg.MaxAtoms {
		return nil, errors.New(errors.ErrCodeGraphTooLarge,
			fmt.Sprintf("molecule has %d atoms, limit is %d", g.VertexCount(), s.cfg.MaxAtoms))
	}

	s.graphs.Add(key, g)
	return g, nil
}

// parsePattern parses in.Text as a substructure query.  SMARTS input becomes
// a pattern directly; molecule formats are parsed and lifted to an exact
// pattern.
func (s *service) parsePattern(in Input) (*chem.Pattern, error) {
	format, err := normalizeFormat(in.Format)
	if err != nil {
		return nil, err
	}
	if format == "smarts" {
		return smiles.ParsePattern(in.Text)
	}
	g, err := s.parseGraph(in)
	if err != nil {
		return nil, err
	}
	return chem.PatternFromGraph(g), nil
}

// budget resolves a search budget from options and engine defaults.
func (s *service) budget(opts SearchOptions) mcs.Budget {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = s.cfg.DefaultTimeout
	}
	maxNodes := opts.MaxNodes
	if maxNodes == 0 {
		maxNodes = s.cfg.MaxNodes
	}
	return mcs.NewBudget(timeout, maxNodes)
}

func (s *service) kind(opts SearchOptions) (mcs.Kind, error) {
	if opts.Kind == "" {
		return mcs.KindInduced, nil
	}
	return mcs.ParseKind(opts.Kind)
}

func (s *service) ExactMatch(ctx context.Context, a, b Input) (*MatchResult, error) {
	start := time.Now()
	res, err := s.exactMatch(a, b)
	s.observe("exact", start, err)
	return res, err
}

func (s *service) exactMatch(a, b Input) (*MatchResult, error) {
	ga, err := s.parseGraph(a)
	if err != nil {
		return nil, err
	}
	gb, err := s.parseGraph(b)
	if err != nil {
		return nil, err
	}
	return &MatchResult{Matched: match.ExactMatch(ga, gb)}, nil
}

func (s *service) SubstructureMatch(ctx context.Context, pattern, target Input) (*MatchResult, error) {
	start := time.Now()
	res, err := s.substructureMatch(pattern, target)
	s.observe("substructure", start, err)
	return res, err
}

func (s *service) substructureMatch(pattern, target Input) (*MatchResult, error) {
	p, err := s.parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	g, err := s.parseGraph(target)
	if err != nil {
		return nil, err
	}
	return &MatchResult{Matched: match.SubstructureMatch(p, g)}, nil
}

func (s *service) CommonSubgraph(ctx context.Context, a, b Input, opts SearchOptions) (*CommonResult, error) {
	start := time.Now()
	res, err := s.commonSubgraph(a, b, opts)
	s.observe("mcs", start, err)
	return res, err
}

func (s *service) commonSubgraph(a, b Input, opts SearchOptions) (*CommonResult, error) {
	ga, err := s.parseGraph(a)
	if err != nil {
		return nil, err
	}
	gb, err := s.parseGraph(b)
	if err != nil {
		return nil, err
	}
	kind, err := s.kind(opts)
	if err != nil {
		return nil, err
	}
	result, err := mcs.Solve(ga, gb, kind, s.budget(opts))
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		prom.RecordSearch(s.metrics, kind.String(), result.Nodes, result.Exhaustive)
		s.metrics.CommonSubgraphSize.WithLabelValues(kind.String()).Observe(float64(result.Size))
	}
	return &CommonResult{
		Kind:       kind.String(),
		Size:       result.Size,
		Mapping:    result.Mapping,
		Exhaustive: result.Exhaustive,
		Nodes:      result.Nodes,
	}, nil
}

// scoreSizes returns the compared sizes of both graphs under the given
// objective: atoms for induced searches, bonds for edge searches.
func scoreSizes(ga, gb *chem.Graph, kind mcs.Kind) (int, int) {
	if kind == mcs.KindEdge {
		return ga.EdgeCount(), gb.EdgeCount()
	}
	return ga.VertexCount(), gb.VertexCount()
}

// scoreFunc derives the metric value from a common size and the two compared
// sizes.
type scoreFunc func(common, na, nb int) float64

func (s *service) Similarity(ctx context.Context, a, b Input, opts SearchOptions) (*ScoreResult, error) {
	start := time.Now()
	res, err := s.score(ctx, "similarity", a, b, opts, func(common, na, nb int) float64 {
		return metric.Tanimoto(common, na, nb)
	})
	s.observe("similarity", start, err)
	return res, err
}

func (s *service) Distance(ctx context.Context, a, b Input, opts SearchOptions) (*ScoreResult, error) {
	start := time.Now()
	res, err := s.score(ctx, "distance", a, b, opts, func(common, na, nb int) float64 {
		return float64(metric.Distance(common, na, nb))
	})
	s.observe("distance", start, err)
	return res, err
}

func (s *service) GLS(ctx context.Context, a, b Input, opts SearchOptions) (*ScoreResult, error) {
	start := time.Now()
	res, err := s.score(ctx, "gls", a, b, opts, func(common, na, nb int) float64 {
		return metric.GLS(common, na, nb)
	})
	s.observe("gls", start, err)
	return res, err
}

// score runs the common-subgraph search behind all pairwise metrics, with an
// optional shared-cache fast path keyed by the canonical structure keys of
// both molecules.
func (s *service) score(ctx context.Context, op string, a, b Input, opts SearchOptions, f scoreFunc) (*ScoreResult, error) {
	ga, err := s.parseGraph(a)
	if err != nil {
		return nil, err
	}
	gb, err := s.parseGraph(b)
	if err != nil {
		return nil, err
	}
	kind, err := s.kind(opts)
	if err != nil {
		return nil, err
	}

	cacheKey := ""
	if s.results != nil {
		cacheKey = s.scoreCacheKey(op, kind, ga, gb)
		var cached ScoreResult
		if err := s.results.Get(ctx, cacheKey, &cached); err == nil {
			if s.metrics != nil {
				prom.RecordCacheAccess(s.metrics, "result_redis", true)
			}
			return &cached, nil
		}
		if s.metrics != nil {
			prom.RecordCacheAccess(s.metrics, "result_redis", false)
		}
	}

	result, err := mcs.Solve(ga, gb, kind, s.budget(opts))
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		prom.RecordSearch(s.metrics, kind.String(), result.Nodes, result.Exhaustive)
	}

	na, nb := scoreSizes(ga, gb, kind)
	out := &ScoreResult{
		Score:      f(result.Size, na, nb),
		Common:     result.Size,
		SizeA:      na,
		SizeB:      nb,
		Exhaustive: result.Exhaustive,
	}
	if s.metrics != nil && op != "distance" {
		s.metrics.SimilarityScore.WithLabelValues(op).Observe(out.Score)
	}

	// Only exhaustive scores are shared; a budget-degraded lower bound from
	// one caller must not masquerade as the true score for another.
	if s.results != nil && out.Exhaustive {
		if err := s.results.Set(ctx, cacheKey, out, 0); err != nil {
			s.logger.Warn("failed to cache score", logging.String(logging.FieldOperation, op), logging.Err(err))
		}
	}
	return out, nil
}

// scoreCacheKey builds a symmetric cache key from the canonical structure
// keys, so A-vs-B and B-vs-A share one entry.
func (s *service) scoreCacheKey(op string, kind mcs.Kind, ga, gb *chem.Graph) string {
	ka, kb := ident.Key(ga), ident.Key(gb)
	pair := []string{ka, kb}
	sort.Strings(pair)
	return op + ":" + kind.String() + ":" + pair[0] + ":" + pair[1]
}

func (s *service) GLSBatch(ctx context.Context, reference Input, candidates []Input, opts SearchOptions) (*BatchResult, error) {
	start := time.Now()
	batchID := uuid.NewString()

	// The reference must parse; a broken reference fails the whole batch
	// rather than producing one error per candidate.
	if _, err := s.parseGraph(reference); err != nil {
		s.observe("gls_batch", start, err)
		return nil, err
	}

	items := make([]BatchItem, len(candidates))
	workers := s.cfg.BatchWorkers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cand := range candidates {
		g.Go(func() error {
			if s.metrics != nil {
				s.metrics.BatchActiveWorkers.WithLabelValues().Inc()
				defer s.metrics.BatchActiveWorkers.WithLabelValues().Dec()
			}
			res, err := s.GLS(gctx, reference, cand, opts)
			if err != nil {
				items[i] = BatchItem{Index: i, Error: err.Error()}
				return nil
			}
			items[i] = BatchItem{Index: i, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.observe("gls_batch", start, err)
		return nil, err
	}

	failed := 0
	for _, item := range items {
		if item.Error != "" {
			failed++
		}
	}
	if s.metrics != nil {
		s.metrics.BatchSize.WithLabelValues().Observe(float64(len(candidates)))
		status := "success"
		if failed > 0 {
			status = "partial"
		}
		s.metrics.BatchRequestsTotal.WithLabelValues(status).Inc()
	}
	s.logger.Info("batch comparison finished",
		logging.String("batch_id", batchID),
		logging.Int("candidates", len(candidates)),
		logging.Int("failed", failed),
		logging.Duration(logging.FieldDuration, time.Since(start)),
	)
	s.observe("gls_batch", start, nil)
	return &BatchResult{BatchID: batchID, Items: items, Failed: failed}, nil
}

func (s *service) Inspect(ctx context.Context, in Input) (*MoleculeInfo, error) {
	start := time.Now()
	info, err := s.inspect(in)
	s.observe("inspect", start, err)
	return info, err
}

func (s *service) inspect(in Input) (*MoleculeInfo, error) {
	g, err := s.parseGraph(in)
	if err != nil {
		return nil, err
	}
	weight, err := props.StandardWeight(g)
	if err != nil {
		return nil, err
	}
	info := &MoleculeInfo{
		Atoms:  g.VertexCount(),
		Bonds:  g.EdgeCount(),
		Weight: weight,
		Key:    ident.Key(g),
	}
	for i := 0; i < g.VertexCount(); i++ {
		a := g.Atom(i)
		if a.InRing {
			info.RingAtoms++
		}
		if a.Aromatic {
			info.AromaticAtoms++
		}
	}
	return info, nil
}

func (s *service) RenderDOT(ctx context.Context, in Input) (string, error) {
	g, err := s.parseGraph(in)
	if err != nil {
		return "", err
	}
	return render.ToDOT(g), nil
}

func (s *service) RenderSVG(ctx context.Context, in Input) ([]byte, error) {
	start := time.Now()
	g, err := s.parseGraph(in)
	if err != nil {
		return nil, err
	}
	out, err := render.SVG(ctx, g)
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "failure"
		}
		s.metrics.RenderRequestsTotal.WithLabelValues("svg", status).Inc()
		s.metrics.RenderDuration.WithLabelValues("svg").Observe(time.Since(start).Seconds())
	}
	return out, err
}

// observe records the outcome of one operation on the comparison metrics.
func (s *service) observe(op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	prom.RecordComparison(s.metrics, op, time.Since(start), err)
}
