package models

import (
	"time"
)

// Article represents a blog article
type Article struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Summary   string    `json:"summary" db:"summary"`
	Author    string    `json:"author" db:"author"`
	Category  string    `json:"category" db:"category"`
	Tags      []string  `json:"tags" db:"-"` // Stored as JSONB
	Type      string    `json:"type" db:"type"`
	Grade     string    `json:"grade" db:"grade"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidGrades defines allowed article visibility levels
var ValidGrades = map[string]bool{
	"public":  true,
	"private": true,
	"member":  true,
}

// ValidTypes defines allowed article origins
var ValidTypes = map[string]bool{
	"original":    true,
	"reprint":     true,
	"translation": true,
}

const (
	// MaxTitleLength is the maximum title length in runes
	MaxTitleLength = 255
	// MaxTags is the maximum number of tags per article
	MaxTags = 10
)

// ArticleForm is the publish payload, accepted as form fields or JSON.
// The id is read separately so that a malformed value can be reported as a client error.
type ArticleForm struct {
	Title    string   `form:"articleTitle" json:"articleTitle"`
	Content  string   `form:"articleContent" json:"articleContent"`
	Summary  string   `form:"articleSummary" json:"articleSummary"`
	Category string   `form:"articleCategories" json:"articleCategories"`
	Tags     []string `form:"articleTags" json:"articleTags"`
	Type     string   `form:"articleType" json:"articleType"`
	Grade    string   `form:"articleGrade" json:"articleGrade"`
}

// ToArticle builds the domain object. Author and id are filled in by the caller.
func (f *ArticleForm) ToArticle() *Article {
	a := &Article{
		Title:    f.Title,
		Content:  f.Content,
		Summary:  f.Summary,
		Category: f.Category,
		Tags:     f.Tags,
		Type:     f.Type,
		Grade:    f.Grade,
	}
	if a.Type == "" {
		a.Type = "original"
	}
	if a.Grade == "" {
		a.Grade = "public"
	}
	return a
}

// PublishResult is returned after a successful publish
type PublishResult struct {
	ArticleID    int64  `json:"articleId"`
	ArticleTitle string `json:"articleTitle"`
	Author       string `json:"author"`
	UpdateDate   string `json:"updateDate"`
	ArticleURL   string `json:"articleUrl"`
}
