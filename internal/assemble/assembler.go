// Package assemble concatenates business info, top FAQ matches and a
// troubleshooting guide into the context block handed to the external
// answer-generation component.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/retrieval"
	"github.com/fixdesklabs/kbengine/internal/troubleshoot"
)

var tracer = otel.Tracer("kbengine/assemble")

// Assembler builds generation context from the knowledge snapshot.
type Assembler struct {
	source troubleshoot.SnapshotSource
	guides *troubleshoot.Service
	logger *zap.Logger
	tracer trace.Tracer
}

// New creates an assembler. The guide service may share the same snapshot
// source.
func New(source troubleshoot.SnapshotSource, guides *troubleshoot.Service, logger *zap.Logger) (*Assembler, error) {
	if source == nil {
		return nil, errors.New("snapshot source is required")
	}
	if guides == nil {
		return nil, errors.New("guide service is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Assembler{
		source: source,
		guides: guides,
		logger: logger,
		tracer: tracer,
	}, nil
}

// Build returns the context text for a query: the business info block, the
// top FAQ matches as numbered Q/A pairs, and, when deviceType is given and a
// guide matches, the guide's steps with safety and escalation notes.
func (a *Assembler) Build(ctx context.Context, rawQuery, deviceType string) string {
	ctx, span := a.tracer.Start(ctx, "Assembler.Build")
	defer span.End()

	snap := a.source.Snapshot(ctx)
	matches := retrieval.TopMatches(snap, rawQuery, retrieval.DefaultTopK)
	span.SetAttributes(attribute.Int("faq_matches", len(matches)))

	var b strings.Builder
	writeBusinessInfo(&b, snap.Business)
	writeMatches(&b, matches)

	if deviceType != "" {
		if guide := a.guides.Guide(ctx, deviceType, rawQuery); guide != nil {
			span.SetAttributes(attribute.String("guide", guide.Key))
			writeGuide(&b, deviceType, guide)
		}
	}

	return b.String()
}

func writeBusinessInfo(b *strings.Builder, info *knowledge.BusinessInfo) {
	if info == nil {
		return
	}
	b.WriteString("Business Information:\n")
	fmt.Fprintf(b, "Name: %s\n", info.Name)
	fmt.Fprintf(b, "Location: %s\n", info.Location)
	fmt.Fprintf(b, "Phone: %s\n", info.Phone)
	fmt.Fprintf(b, "Email: %s\n", info.Email)
	fmt.Fprintf(b, "Hours: weekdays %s, weekend %s, holidays %s\n",
		info.Hours.Weekdays, info.Hours.Weekend, info.Hours.Holidays)
	b.WriteString("\n")
}

func writeMatches(b *strings.Builder, matches []knowledge.Item) {
	if len(matches) == 0 {
		return
	}
	b.WriteString("Relevant FAQ entries:\n")
	for i, item := range matches {
		fmt.Fprintf(b, "%d. Q: %s\n", i+1, item.Question)
		fmt.Fprintf(b, "   A: %s\n", item.Answer)
	}
	b.WriteString("\n")
}

func writeGuide(b *strings.Builder, deviceType string, g *knowledge.Guide) {
	fmt.Fprintf(b, "Troubleshooting guide for %s (difficulty: %s, safety level: %s):\n",
		deviceType, g.Difficulty, g.SafetyLevel)
	if len(g.ToolsNeeded) > 0 {
		fmt.Fprintf(b, "Tools needed: %s\n", strings.Join(g.ToolsNeeded, ", "))
	}
	for _, step := range g.Steps {
		fmt.Fprintf(b, "%d. %s: %s\n", step.Order, step.Action, step.Description)
		if step.Warning != "" {
			fmt.Fprintf(b, "   Warning: %s\n", step.Warning)
		}
	}
	if g.WhenToStop != "" {
		fmt.Fprintf(b, "When to stop: %s\n", g.WhenToStop)
	}
	if g.ProfessionalHelpNeeded != "" {
		fmt.Fprintf(b, "Professional help: %s\n", g.ProfessionalHelpNeeded)
	}
}
