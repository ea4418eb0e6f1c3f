// Package troubleshoot locates step-by-step repair guides for a device
// class and free-text issue description.
//
// Guide lookup is first-match over the authored guide order: data authors
// list the most common cause first, and the matcher honors that ordering
// rather than scoring for best overlap. No match is a normal outcome
// returned as nil, never an error.
package troubleshoot

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
)

var tracer = otel.Tracer("kbengine/troubleshoot")

// SnapshotSource provides the current knowledge snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) *knowledge.Snapshot
}

// Service matches issue descriptions to troubleshooting guides.
type Service struct {
	source SnapshotSource
	logger *zap.Logger
	tracer trace.Tracer
}

// NewService creates a troubleshoot service over the given snapshot source.
func NewService(source SnapshotSource, logger *zap.Logger) (*Service, error) {
	if source == nil {
		return nil, errors.New("snapshot source is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		source: source,
		logger: logger,
		tracer: tracer,
	}, nil
}

// ClassifyDevice maps a free-form device type to a guide bucket. Anything
// not recognizably a computer falls back to the mobile bucket.
func ClassifyDevice(deviceType string) knowledge.Bucket {
	lower := strings.ToLower(deviceType)
	if strings.Contains(lower, "computer") || strings.Contains(lower, "laptop") {
		return knowledge.BucketComputer
	}
	return knowledge.BucketMobile
}

// Guide returns the first guide in the device's bucket whose symptoms or
// issue key overlap the issue description, or nil when none match.
func (s *Service) Guide(ctx context.Context, deviceType, issue string) *knowledge.Guide {
	ctx, span := s.tracer.Start(ctx, "Service.Guide")
	defer span.End()

	bucket := ClassifyDevice(deviceType)
	span.SetAttributes(
		attribute.String("device_type", deviceType),
		attribute.String("bucket", string(bucket)),
	)

	issueLower := strings.ToLower(strings.TrimSpace(issue))
	if issueLower == "" {
		return nil
	}

	idx := s.source.Snapshot(ctx).GuidesFor(bucket)
	for _, cat := range idx.Categories {
		for i := range cat.Guides {
			g := &cat.Guides[i]
			if guideMatches(g, issueLower) {
				s.logger.Debug("troubleshooting guide matched",
					zap.String("bucket", string(bucket)),
					zap.String("category", g.Category),
					zap.String("guide", g.Key))
				matched := *g
				return &matched
			}
		}
	}

	s.logger.Debug("no troubleshooting guide matched",
		zap.String("bucket", string(bucket)),
		zap.String("issue", issue))
	return nil
}

// guideMatches checks for case-insensitive substring overlap between the
// issue text and either a symptom or the guide's issue key.
func guideMatches(g *knowledge.Guide, issueLower string) bool {
	for _, symptom := range g.Symptoms {
		if substringOverlap(strings.ToLower(symptom), issueLower) {
			return true
		}
	}
	key := strings.ReplaceAll(strings.ToLower(g.Key), "_", " ")
	return substringOverlap(key, issueLower)
}

func substringOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
