package knowledge

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Bucket selects a troubleshooting guide collection by device class.
type Bucket string

const (
	BucketComputer Bucket = "computer"
	BucketMobile   Bucket = "mobile"
)

// Category is a named grouping of FAQ items. Membership is informational
// only; retrieval never filters by category.
type Category struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

// Item is a single question/answer record with author-supplied keywords.
type Item struct {
	Question   string   `yaml:"question"`
	Answer     string   `yaml:"answer"`
	Keywords   []string `yaml:"keywords"`
	Difficulty string   `yaml:"difficulty"`

	// Category is assigned at load time from the owning category.
	Category string `yaml:"-"`
}

// BusinessInfo describes the shop the FAQ corpus belongs to.
type BusinessInfo struct {
	Name      string `yaml:"name"`
	Location  string `yaml:"location"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	Hours     Hours  `yaml:"hours"`
	Emergency string `yaml:"emergency"`
}

// Hours holds opening hours per day group.
type Hours struct {
	Weekdays string `yaml:"weekdays"`
	Weekend  string `yaml:"weekend"`
	Holidays string `yaml:"holidays"`
}

// Step is one action in a troubleshooting guide. Order is 1-based and
// preserved exactly as authored.
type Step struct {
	Order       int    `yaml:"step"`
	Action      string `yaml:"action"`
	Description string `yaml:"description"`
	Warning     string `yaml:"warning,omitempty"`
}

// Guide is an ordered repair procedure for a single issue.
type Guide struct {
	Key                    string   `yaml:"-"`
	Category               string   `yaml:"-"`
	Symptoms               []string `yaml:"symptoms"`
	Difficulty             string   `yaml:"difficulty"`
	ToolsNeeded            []string `yaml:"tools_needed"`
	SafetyLevel            string   `yaml:"safety_level"`
	Steps                  []Step   `yaml:"steps"`
	WhenToStop             string   `yaml:"when_to_stop"`
	ProfessionalHelpNeeded string   `yaml:"professional_help_needed"`
}

// GuideCategory groups guides under a category key, in authored order.
type GuideCategory struct {
	Key    string
	Guides []Guide
}

// GuideIndex is the full guide collection for one device bucket.
// Category and guide order follow the source document; the matcher's
// first-match policy depends on it.
type GuideIndex struct {
	Categories []GuideCategory
}

// UnmarshalYAML decodes a mapping of category key to guide map while
// preserving document order, which plain map decoding would lose.
func (idx *GuideIndex) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("guide index: expected mapping, got %v", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		cat := GuideCategory{Key: node.Content[i].Value}
		if err := decodeGuideCategory(&cat, node.Content[i+1]); err != nil {
			return fmt.Errorf("guide category %q: %w", cat.Key, err)
		}
		idx.Categories = append(idx.Categories, cat)
	}
	return nil
}

func decodeGuideCategory(cat *GuideCategory, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got %v", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var g Guide
		if err := node.Content[i+1].Decode(&g); err != nil {
			return fmt.Errorf("guide %q: %w", node.Content[i].Value, err)
		}
		g.Key = node.Content[i].Value
		g.Category = cat.Key
		cat.Guides = append(cat.Guides, g)
	}
	return nil
}

// Snapshot is an immutable view of all loaded knowledge. It is shared by
// reference across concurrent readers and never mutated after load.
type Snapshot struct {
	Categories []Category
	// Items is the corpus flattened in category-then-item insertion order,
	// with the category back-reference filled in. Ranking ties resolve by
	// position in this slice.
	Items    []Item
	Business *BusinessInfo
	Guides   map[Bucket]*GuideIndex
}

// GuidesFor returns the guide index for a bucket, or an empty index when
// the bucket was never loaded.
func (s *Snapshot) GuidesFor(bucket Bucket) *GuideIndex {
	if idx, ok := s.Guides[bucket]; ok && idx != nil {
		return idx
	}
	return &GuideIndex{}
}
