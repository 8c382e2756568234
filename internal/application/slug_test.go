package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Shopping List", "shopping-list"},
		{"  --Hello, World!--  ", "hello-world"},
		{"Café notes", "café-notes"},
		{"???", "note"},
		{"", "note"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.title))
		})
	}
}

func TestSlugify_TruncatesLongTitles(t *testing.T) {
	slug := slugify(strings.Repeat("é", 40))
	assert.LessOrEqual(t, len(slug), maxSlugLen)
	assert.True(t, strings.HasPrefix(slug, "é"))
	assert.Equal(t, 25, len([]rune(slug)))
}
