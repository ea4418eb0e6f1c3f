package scoring

import "strings"

// termSet is a lowercase term lookup used by the rule tables.
type termSet map[string]struct{}

func newTermSet(terms ...string) termSet {
	s := make(termSet, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

// anyToken reports whether any query token is a member of the set.
func (s termSet) anyToken(tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := s[tok]; ok {
			return true
		}
	}
	return false
}

// anyKeywordContains reports whether any keyword contains a member of the
// set as a substring. Keywords are author-supplied phrases, so "mobile
// repair" matches the term "mobile".
func (s termSet) anyKeywordContains(keywords []string) bool {
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for term := range s {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

// Term sets behind the specificity classifier.
var (
	specificDeviceTerms = newTermSet(
		"phone", "phones", "mobile", "smartphone", "cell",
		"tablet", "ipad",
		"computer", "laptop", "pc", "mac",
	)
	repairIntentTerms = newTermSet("repair", "fix", "broken", "issue", "problem")
	generalTerms      = newTermSet("services", "what do you do", "offer", "what services")
	contactTerms      = newTermSet("contact", "call", "reach", "email")
)

// affinityRule is a declarative adjustment: it fires when any query token is
// in queryTerms and any item keyword contains a member of keywordTerms. A
// negative weight makes it a penalty.
type affinityRule struct {
	name         string
	weight       int
	queryTerms   termSet
	keywordTerms termSet
}

func (r affinityRule) fires(tokens []string, keywords []string) bool {
	return r.queryTerms.anyToken(tokens) && r.keywordTerms.anyKeywordContains(keywords)
}

// topicalRules boost items whose keyword profile matches a recognized query
// topic (pricing, opening hours, location).
var topicalRules = []affinityRule{
	{
		name:         "pricing",
		weight:       25,
		queryTerms:   newTermSet("cost", "price", "pricing", "much"),
		keywordTerms: newTermSet("cost", "price", "pricing", "expensive", "cheap"),
	},
	{
		name:         "hours",
		weight:       25,
		queryTerms:   newTermSet("hours", "open", "closed", "time"),
		keywordTerms: newTermSet("hours", "open", "closed", "time", "schedule"),
	},
	{
		name:         "location",
		weight:       25,
		queryTerms:   newTermSet("location", "where", "address"),
		keywordTerms: newTermSet("location", "address", "where", "find", "directions"),
	},
}

// penaltyRules demote items whose keyword profile contradicts the query
// intent: contact items for repair queries, catch-all service items for
// device-specific queries.
var penaltyRules = []affinityRule{
	{
		name:         "repair query vs contact item",
		weight:       -60,
		queryTerms:   repairIntentTerms,
		keywordTerms: contactTerms,
	},
	{
		name:         "specific query vs general item",
		weight:       -50,
		queryTerms:   specificDeviceTerms,
		keywordTerms: generalTerms,
	},
}

// deviceFamily disambiguates repair queries between device sub-families.
// An item earns the family boost when its keywords carry the family's
// "<device> repair" phrasing.
type deviceFamily struct {
	name          string
	queryTerms    termSet
	repairPhrases []string
}

var deviceFamilies = []deviceFamily{
	{
		name:          "phone",
		queryTerms:    newTermSet("phone", "phones", "mobile", "smartphone", "cell"),
		repairPhrases: []string{"phone repair", "mobile repair", "smartphone repair"},
	},
	{
		name:          "tablet",
		queryTerms:    newTermSet("tablet", "ipad"),
		repairPhrases: []string{"tablet repair", "ipad repair"},
	},
	{
		name:          "computer",
		queryTerms:    newTermSet("computer", "laptop", "pc", "mac"),
		repairPhrases: []string{"computer repair", "laptop repair", "pc repair", "mac repair"},
	},
}

func (f deviceFamily) matchesKeywords(keywords []string) bool {
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, phrase := range f.repairPhrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}
