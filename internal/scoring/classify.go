package scoring

import (
	"strings"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/query"
)

// QueryProfile captures the intent signals a query carries.
type QueryProfile struct {
	HasSpecificDevice bool
	HasRepairIntent   bool
}

// ItemProfile captures what kind of question an item answers, derived from
// its author-supplied keywords.
type ItemProfile struct {
	IsSpecific bool
	IsRepair   bool
	IsGeneral  bool
	IsContact  bool
}

// ProfileQuery classifies a normalized query against the device and repair
// intent term sets.
func ProfileQuery(q query.Normalized) QueryProfile {
	return QueryProfile{
		HasSpecificDevice: specificDeviceTerms.anyToken(q.Tokens),
		HasRepairIntent:   repairIntentTerms.anyToken(q.Tokens),
	}
}

// ProfileItem classifies an item by its keyword profile.
func ProfileItem(item *knowledge.Item) ItemProfile {
	return ItemProfile{
		IsSpecific: specificDeviceTerms.anyKeywordContains(item.Keywords),
		IsRepair:   itemHasRepairKeyword(item.Keywords),
		IsGeneral:  generalTerms.anyKeywordContains(item.Keywords),
		IsContact:  contactTerms.anyKeywordContains(item.Keywords),
	}
}

func itemHasRepairKeyword(keywords []string) bool {
	if repairIntentTerms.anyKeywordContains(keywords) {
		return true
	}
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if strings.Contains(lower, "repair") || strings.Contains(lower, "fix") {
			return true
		}
	}
	return false
}
