package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/query"
)

func TestProfileQuery(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantSpecific bool
		wantRepair   bool
	}{
		{"device and repair", "phone repair", true, true},
		{"device only", "new tablet prices", true, false},
		{"repair only", "can you fix this", false, true},
		{"neither", "opening hours", false, false},
		{"empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfileQuery(query.Normalize(tt.raw))
			assert.Equal(t, tt.wantSpecific, got.HasSpecificDevice)
			assert.Equal(t, tt.wantRepair, got.HasRepairIntent)
		})
	}
}

func TestProfileItem(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     ItemProfile
	}{
		{
			name:     "specific repair item",
			keywords: []string{"phone repair", "screen"},
			want:     ItemProfile{IsSpecific: true, IsRepair: true},
		},
		{
			name:     "general services item",
			keywords: []string{"services", "offer"},
			want:     ItemProfile{IsGeneral: true},
		},
		{
			name:     "contact item",
			keywords: []string{"contact", "call"},
			want:     ItemProfile{IsContact: true},
		},
		{
			name:     "fix keyword implies repair",
			keywords: []string{"quick fixes"},
			want:     ItemProfile{IsRepair: true},
		},
		{
			name:     "no keywords",
			keywords: nil,
			want:     ItemProfile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := knowledge.Item{Keywords: tt.keywords}
			assert.Equal(t, tt.want, ProfileItem(&item))
		})
	}
}
