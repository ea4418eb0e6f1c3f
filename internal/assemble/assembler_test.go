package assemble

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/troubleshoot"
)

type staticSource struct {
	snap *knowledge.Snapshot
}

func (s staticSource) Snapshot(context.Context) *knowledge.Snapshot {
	return s.snap
}

func testSnapshot() *knowledge.Snapshot {
	items := []knowledge.Item{
		{
			Question: "Do you repair laptops?",
			Answer:   "Yes, laptop repairs take two days.",
			Keywords: []string{"laptop repair"},
			Category: "Repairs",
		},
		{
			Question: "How much does a laptop repair cost?",
			Answer:   "From forty euros, depending on the fault.",
			Keywords: []string{"laptop repair", "cost"},
			Category: "Pricing",
		},
	}
	return &knowledge.Snapshot{
		Items: items,
		Business: &knowledge.BusinessInfo{
			Name:     "FixDesk",
			Location: "12 High Street",
			Phone:    "555-0101",
			Email:    "info@fixdesk.example",
			Hours: knowledge.Hours{
				Weekdays: "9:00-17:00",
				Weekend:  "10:00-14:00",
				Holidays: "closed",
			},
		},
		Guides: map[knowledge.Bucket]*knowledge.GuideIndex{
			knowledge.BucketComputer: {
				Categories: []knowledge.GuideCategory{
					{
						Key: "power",
						Guides: []knowledge.Guide{
							{
								Key:         "wont_turn_on",
								Category:    "power",
								Symptoms:    []string{"broken", "no power"},
								Difficulty:  "easy",
								SafetyLevel: "low",
								ToolsNeeded: []string{"power cable"},
								Steps: []knowledge.Step{
									{Order: 1, Action: "Check cable", Description: "Reseat it.", Warning: "Unplug first."},
								},
								WhenToStop:             "After two attempts.",
								ProfessionalHelpNeeded: "Bench test in-shop.",
							},
						},
					},
				},
			},
		},
	}
}

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	source := staticSource{snap: testSnapshot()}
	guides, err := troubleshoot.NewService(source, zap.NewNop())
	require.NoError(t, err)
	a, err := New(source, guides, zap.NewNop())
	require.NoError(t, err)
	return a
}

func TestBuildContainsAllSections(t *testing.T) {
	a := newTestAssembler(t)

	text := a.Build(context.Background(), "laptop repair broken", "laptop")

	// Business block.
	assert.Contains(t, text, "Business Information:")
	assert.Contains(t, text, "Name: FixDesk")
	assert.Contains(t, text, "Hours: weekdays 9:00-17:00, weekend 10:00-14:00, holidays closed")

	// Numbered Q/A pairs.
	assert.Contains(t, text, "1. Q: ")
	assert.Contains(t, text, "   A: ")

	// Guide block with safety, tools, steps and escalation text.
	assert.Contains(t, text, "Troubleshooting guide for laptop")
	assert.Contains(t, text, "safety level: low")
	assert.Contains(t, text, "Tools needed: power cable")
	assert.Contains(t, text, "1. Check cable: Reseat it.")
	assert.Contains(t, text, "Warning: Unplug first.")
	assert.Contains(t, text, "When to stop: After two attempts.")
	assert.Contains(t, text, "Professional help: Bench test in-shop.")
}

func TestBuildWithoutDeviceSkipsGuide(t *testing.T) {
	a := newTestAssembler(t)

	text := a.Build(context.Background(), "laptop repair", "")
	assert.NotContains(t, text, "Troubleshooting guide")
	assert.Contains(t, text, "Business Information:")
}

func TestBuildOrdersSections(t *testing.T) {
	a := newTestAssembler(t)

	text := a.Build(context.Background(), "laptop repair broken", "laptop")
	business := strings.Index(text, "Business Information:")
	faq := strings.Index(text, "Relevant FAQ entries:")
	guide := strings.Index(text, "Troubleshooting guide")

	require.GreaterOrEqual(t, business, 0)
	require.Greater(t, faq, business, "FAQ section follows the business block")
	require.Greater(t, guide, faq, "guide section comes last")
}

func TestBuildEmptyQuery(t *testing.T) {
	a := newTestAssembler(t)

	text := a.Build(context.Background(), "", "")
	assert.NotContains(t, text, "Relevant FAQ entries:", "empty query yields no matches")
	assert.Contains(t, text, "Business Information:")
}
