// Package engine exposes the support-chatbot knowledge retrieval engine.
//
// The engine ranks a curated FAQ corpus against free-text customer queries
// and locates matching troubleshooting guides. All operations are
// deterministic, read-only functions over an immutable knowledge snapshot
// and are safe for unlimited concurrent use. Absence of a match is always a
// well-formed result, never an error.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fixdesklabs/kbengine/internal/assemble"
	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/retrieval"
	"github.com/fixdesklabs/kbengine/internal/troubleshoot"
)

var tracer = otel.Tracer("kbengine/engine")

// Engine is the retrieval facade consumed by the HTTP layer and CLI.
type Engine struct {
	store     *knowledge.Store
	guides    *troubleshoot.Service
	assembler *assemble.Assembler
	logger    *zap.Logger
	tracer    trace.Tracer
	topK      int
}

// New creates an engine over the given knowledge store. topK bounds Search
// results; values below one fall back to the default.
func New(store *knowledge.Store, logger *zap.Logger, topK int) (*Engine, error) {
	if store == nil {
		return nil, errors.New("knowledge store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if topK < 1 {
		topK = retrieval.DefaultTopK
	}

	guides, err := troubleshoot.NewService(store, logger.Named("troubleshoot"))
	if err != nil {
		return nil, fmt.Errorf("failed to create guide service: %w", err)
	}
	assembler, err := assemble.New(store, guides, logger.Named("assemble"))
	if err != nil {
		return nil, fmt.Errorf("failed to create assembler: %w", err)
	}

	return &Engine{
		store:     store,
		guides:    guides,
		assembler: assembler,
		logger:    logger,
		tracer:    tracer,
		topK:      topK,
	}, nil
}

// Search returns the top-K FAQ items for a query under the
// specificity-adjusted ranking. An empty result is a normal outcome.
func (e *Engine) Search(ctx context.Context, rawQuery string) []knowledge.Item {
	ctx, span := e.tracer.Start(ctx, "Engine.Search")
	defer span.End()

	items := retrieval.TopMatches(e.store.Snapshot(ctx), rawQuery, e.topK)
	span.SetAttributes(attribute.Int("matches", len(items)))
	return items
}

// BestAnswer returns the single highest-ranked item under baseline scoring,
// or false when no item clears the confidence threshold.
func (e *Engine) BestAnswer(ctx context.Context, rawQuery string) (knowledge.Item, bool) {
	ctx, span := e.tracer.Start(ctx, "Engine.BestAnswer")
	defer span.End()

	item, ok := retrieval.BestAnswer(e.store.Snapshot(ctx), rawQuery)
	span.SetAttributes(attribute.Bool("found", ok))
	return item, ok
}

// Guide returns the troubleshooting guide matching a device type and issue
// description, or nil when none matches.
func (e *Engine) Guide(ctx context.Context, deviceType, issue string) *knowledge.Guide {
	return e.guides.Guide(ctx, deviceType, issue)
}

// AssembleContext builds the text block handed to the external
// answer-generation component.
func (e *Engine) AssembleContext(ctx context.Context, rawQuery, deviceType string) string {
	return e.assembler.Build(ctx, rawQuery, deviceType)
}

// Reload rebuilds the knowledge snapshot from its sources and returns the
// new corpus size.
func (e *Engine) Reload(ctx context.Context) int {
	snap := e.store.Reload(ctx)
	return len(snap.Items)
}
