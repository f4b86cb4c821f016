package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name          string
		pageNum, size int
		total         int
		wantPages     int
		wantFirst     bool
		wantLast      bool
	}{
		{"empty", 1, 10, 0, 0, true, true},
		{"single partial page", 1, 10, 3, 1, true, true},
		{"first of many", 1, 10, 25, 3, true, false},
		{"middle", 2, 10, 25, 3, false, false},
		{"exact last", 3, 10, 30, 3, false, true},
		{"past the end", 5, 10, 30, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageInfo(tt.pageNum, tt.size, tt.total)
			assert.Equal(t, tt.wantPages, p.Pages)
			assert.Equal(t, tt.wantFirst, p.IsFirstPage)
			assert.Equal(t, tt.wantLast, p.IsLastPage)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.size, p.PageSize)
		})
	}
}

func TestArticleFormDefaults(t *testing.T) {
	f := &ArticleForm{Title: "t", Content: "c"}
	a := f.ToArticle()

	assert.Equal(t, "original", a.Type)
	assert.Equal(t, "public", a.Grade)
	assert.Zero(t, a.ID)
	assert.Empty(t, a.Author)
}
