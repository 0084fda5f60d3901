// Package pipeline composes the retrieval-ranking-verification core:
// normalize, embed, retrieve candidates from the vector index, re-rank with
// the cross-scorer, gate on confidence, and hydrate the decided records.
//
// One invocation per query, stateless across queries. Collaborator handles
// (embedder, scorer, index, store) are injected at construction and shared
// read-only between concurrent invocations.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mashriq/daleel/internal/config"
	"github.com/mashriq/daleel/internal/embedding"
	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/normalize"
	"github.com/mashriq/daleel/internal/scoring"
	"github.com/mashriq/daleel/internal/store"
	"github.com/mashriq/daleel/internal/vector"
)

// Pipeline runs the full search flow for one query at a time.
type Pipeline struct {
	normalizer *normalize.Normalizer
	embedder   embedding.Embedder
	retriever  *Retriever
	reranker   *Reranker
	verifier   *Verifier
	assembler  *Assembler
	cfg        *config.SearchConfig
	logger     *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a logger for debug output (stage timings, decisions).
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline with the given collaborators.
func New(
	normalizer *normalize.Normalizer,
	embedder embedding.Embedder,
	index vector.Index,
	scorer scoring.CrossScorer,
	st store.Store,
	cfg *config.SearchConfig,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		normalizer: normalizer,
		embedder:   embedder,
		retriever:  NewRetriever(index, cfg.RetrieveTimeout.Std()),
		reranker:   NewReranker(scorer, cfg.ScoreTimeout.Std()),
		verifier:   NewVerifier(cfg.HighThreshold, cfg.LowThreshold, cfg.MaxAuxResults),
		assembler:  NewAssembler(st, cfg.HydrateTimeout.Std()),
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decide runs the pipeline up to the Decision, without hydration. An empty
// query (after normalization) short-circuits to NotFound(empty_query)
// before the embedder or the index are touched.
func (p *Pipeline) Decide(ctx context.Context, req *models.SearchRequest) (*models.Decision, error) {
	req.Validate()

	normalized := p.normalizer.Normalize(req.Query)
	if normalized == "" {
		return &models.Decision{
			Outcome:     models.OutcomeNotFound,
			Reason:      models.ReasonEmptyQuery,
			Suggestions: []string{},
		}, nil
	}

	queryVec, err := p.embedder.EmbedQuery(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	candidates, err := p.retriever.Retrieve(ctx, queryVec, p.cfg.RetrieveLimit, req.Category)
	if err != nil {
		return nil, err
	}
	if p.logger != nil {
		p.logger.Debug("candidates retrieved",
			zap.String("query", normalized),
			zap.Int("count", len(candidates)),
		)
	}

	ranked, err := p.reranker.Rerank(ctx, normalized, candidates)
	if err != nil {
		return nil, err
	}

	decision := p.verifier.Verify(ranked, req.Limit-1)
	if p.logger != nil {
		p.logger.Debug("decision made",
			zap.String("outcome", string(decision.Outcome)),
			zap.Float64("confidence", decision.Confidence),
		)
	}
	return &decision, nil
}

// Search runs the full pipeline and returns the assembled response.
// Infrastructure failures (embedding, retrieval, scoring, hydration) return
// an error and no response; a legitimate "no good match" returns a response
// with Found=false.
func (p *Pipeline) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	start := time.Now()

	decision, err := p.Decide(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.assembler.Assemble(ctx, decision, req.Query)
	if err != nil {
		return nil, err
	}
	resp.QueryTime = time.Since(start).Milliseconds()
	return resp, nil
}
