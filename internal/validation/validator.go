package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blog-api/internal/models"
)

// ValidationError represents a single field error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateArticle checks a publish payload before it reaches the store
func ValidateArticle(article *models.Article) []ValidationError {
	var errors []ValidationError

	// Validate title
	title := strings.TrimSpace(article.Title)
	if title == "" {
		errors = append(errors, ValidationError{Field: "articleTitle", Message: "title is required"})
	} else if n := utf8.RuneCountInString(title); n > models.MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "articleTitle",
			Message: fmt.Sprintf("title exceeds maximum of %d characters (has %d)", models.MaxTitleLength, n),
		})
	}

	// Validate content
	if strings.TrimSpace(article.Content) == "" {
		errors = append(errors, ValidationError{Field: "articleContent", Message: "content is required"})
	}

	// Validate grade
	if !models.ValidGrades[article.Grade] {
		errors = append(errors, ValidationError{
			Field:   "articleGrade",
			Message: "invalid grade, must be one of: public, private, member",
			Value:   article.Grade,
		})
	}

	// Validate type
	if !models.ValidTypes[article.Type] {
		errors = append(errors, ValidationError{
			Field:   "articleType",
			Message: "invalid type, must be one of: original, reprint, translation",
			Value:   article.Type,
		})
	}

	// Validate tags
	if len(article.Tags) > models.MaxTags {
		errors = append(errors, ValidationError{
			Field:   "articleTags",
			Message: fmt.Sprintf("at most %d tags allowed (has %d)", models.MaxTags, len(article.Tags)),
		})
	}
	for _, tag := range article.Tags {
		if strings.TrimSpace(tag) == "" {
			errors = append(errors, ValidationError{Field: "articleTags", Message: "tags must not be blank"})
			break
		}
	}

	return errors
}
