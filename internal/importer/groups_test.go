package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductGroup(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Replacement Key A2141 MacBook Pro 16", "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179"},
		{"A1706 / A1707 Key Set", "A1706-A1707-A1708"},
		{"MacBook A1990 15 inch key", "A1989-A1990-A2159"},
		{"Generic laptop key", ""},
		{"Model X9999 unknown family", ""},
		// first recognized token wins
		{"A9998 then A2179 key", "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProductGroup(tt.title), "title %q", tt.title)
	}
}
