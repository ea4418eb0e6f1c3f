package http

import "github.com/fixdesklabs/kbengine/internal/knowledge"

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// FAQItem is the wire form of a knowledge item.
type FAQItem struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

func toFAQItem(item knowledge.Item) FAQItem {
	return FAQItem{
		Question:   item.Question,
		Answer:     item.Answer,
		Category:   item.Category,
		Difficulty: item.Difficulty,
	}
}

// SearchResponse is returned by GET /api/v1/search.
type SearchResponse struct {
	Query string    `json:"query"`
	Items []FAQItem `json:"items"`
}

// AnswerResponse is returned by GET /api/v1/answer. Found is false when no
// item cleared the confidence threshold.
type AnswerResponse struct {
	Found    bool   `json:"found"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

// GuideStep is the wire form of one troubleshooting step.
type GuideStep struct {
	Step        int    `json:"step"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Warning     string `json:"warning,omitempty"`
}

// GuideResponse is returned by GET /api/v1/guide.
type GuideResponse struct {
	Found                  bool        `json:"found"`
	Key                    string      `json:"key,omitempty"`
	Category               string      `json:"category,omitempty"`
	Difficulty             string      `json:"difficulty,omitempty"`
	SafetyLevel            string      `json:"safety_level,omitempty"`
	ToolsNeeded            []string    `json:"tools_needed,omitempty"`
	Symptoms               []string    `json:"symptoms,omitempty"`
	Steps                  []GuideStep `json:"steps,omitempty"`
	WhenToStop             string      `json:"when_to_stop,omitempty"`
	ProfessionalHelpNeeded string      `json:"professional_help_needed,omitempty"`
}

func toGuideResponse(g *knowledge.Guide) GuideResponse {
	if g == nil {
		return GuideResponse{Found: false}
	}
	resp := GuideResponse{
		Found:                  true,
		Key:                    g.Key,
		Category:               g.Category,
		Difficulty:             g.Difficulty,
		SafetyLevel:            g.SafetyLevel,
		ToolsNeeded:            g.ToolsNeeded,
		Symptoms:               g.Symptoms,
		WhenToStop:             g.WhenToStop,
		ProfessionalHelpNeeded: g.ProfessionalHelpNeeded,
	}
	for _, s := range g.Steps {
		resp.Steps = append(resp.Steps, GuideStep{
			Step:        s.Order,
			Action:      s.Action,
			Description: s.Description,
			Warning:     s.Warning,
		})
	}
	return resp
}

// ContextResponse is returned by GET /api/v1/context.
type ContextResponse struct {
	Context string `json:"context"`
}

// ReloadResponse is returned by POST /api/v1/reload.
type ReloadResponse struct {
	Items int `json:"items"`
}

// ErrorResponse is returned on client errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
