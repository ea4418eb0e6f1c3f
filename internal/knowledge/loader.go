package knowledge

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Source file names inside the knowledge directory.
const (
	faqFile      = "faq.yaml"
	businessFile = "business.yaml"
)

func guideFile(bucket Bucket) string {
	return fmt.Sprintf("troubleshooting_%s.yaml", bucket)
}

type faqDocument struct {
	Categories []Category `yaml:"categories"`
}

type businessDocument struct {
	BusinessInfo *BusinessInfo `yaml:"business_info"`
}

// loadCategories reads the FAQ corpus. A missing or malformed source is a
// degraded state, not a failure: the caller gets an empty corpus and a
// warning is logged.
func (s *Store) loadCategories() []Category {
	raw, err := os.ReadFile(filepath.Join(s.dir, faqFile))
	if err != nil {
		s.logger.Warn("FAQ source unavailable, serving empty corpus",
			zap.String("file", faqFile),
			zap.Error(err))
		return nil
	}

	var doc faqDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("FAQ source malformed, serving empty corpus",
			zap.String("file", faqFile),
			zap.Error(err))
		return nil
	}
	return doc.Categories
}

func (s *Store) loadBusinessInfo() *BusinessInfo {
	raw, err := os.ReadFile(filepath.Join(s.dir, businessFile))
	if err != nil {
		s.logger.Warn("business info source unavailable",
			zap.String("file", businessFile),
			zap.Error(err))
		return nil
	}

	var doc businessDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("business info source malformed",
			zap.String("file", businessFile),
			zap.Error(err))
		return nil
	}
	return doc.BusinessInfo
}

// loadGuides reads one device bucket of troubleshooting guides. The source
// document nests the whole index under a single bucket key; order of
// categories and issues is preserved as authored.
func (s *Store) loadGuides(bucket Bucket) *GuideIndex {
	file := guideFile(bucket)
	raw, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		s.logger.Warn("troubleshooting source unavailable, serving empty index",
			zap.String("file", file),
			zap.String("bucket", string(bucket)),
			zap.Error(err))
		return &GuideIndex{}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		s.logger.Warn("troubleshooting source malformed, serving empty index",
			zap.String("file", file),
			zap.String("bucket", string(bucket)),
			zap.Error(err))
		return &GuideIndex{}
	}

	idx, err := decodeGuideDocument(&root)
	if err != nil {
		s.logger.Warn("troubleshooting source malformed, serving empty index",
			zap.String("file", file),
			zap.String("bucket", string(bucket)),
			zap.Error(err))
		return &GuideIndex{}
	}
	return idx
}

// decodeGuideDocument unwraps the top-level bucket key and decodes the
// index below it.
func decodeGuideDocument(root *yaml.Node) (*GuideIndex, error) {
	doc := root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &GuideIndex{}, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected top-level mapping, got %v", doc.Kind)
	}
	if len(doc.Content) < 2 {
		return &GuideIndex{}, nil
	}

	var idx GuideIndex
	if err := doc.Content[1].Decode(&idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// flattenItems produces the corpus in category-then-item insertion order
// and stamps the category back-reference on each item.
func flattenItems(categories []Category) []Item {
	var n int
	for _, c := range categories {
		n += len(c.Items)
	}

	items := make([]Item, 0, n)
	for _, c := range categories {
		for _, it := range c.Items {
			it.Category = c.Name
			items = append(items, it)
		}
	}
	return items
}
