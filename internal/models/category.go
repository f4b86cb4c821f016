package models

import "time"

// Category groups articles by name
type Category struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"categoryName" db:"name"`
	ArticleCount int       `json:"articleCount" db:"-"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

// MaxCategoryNameLength is the maximum category name length in runes
const MaxCategoryNameLength = 64

// CategoryOp selects what UpdateCategory does with the given name
type CategoryOp int

const (
	CategoryAdd    CategoryOp = 1
	CategoryDelete CategoryOp = 2
)
