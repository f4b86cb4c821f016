package models

import (
	"time"
)

// ArticleLikeRecord records that a user liked an article
type ArticleLikeRecord struct {
	ID        int64     `json:"id" db:"id"`
	ArticleID int64     `json:"articleId" db:"article_id"`
	LikerID   int64     `json:"likerId" db:"liker_id"`
	LikeDate  time.Time `json:"likeDate" db:"like_date"`
	IsRead    bool      `json:"isRead" db:"is_read"`
}

// CommentLikeRecord records that a user liked a comment under an article
type CommentLikeRecord struct {
	ID        int64     `json:"id" db:"id"`
	ArticleID int64     `json:"articleId" db:"article_id"`
	CommentID int64     `json:"commentId" db:"comment_id"`
	LikerID   int64     `json:"likerId" db:"liker_id"`
	LikeDate  time.Time `json:"likeDate" db:"like_date"`
	IsRead    bool      `json:"isRead" db:"is_read"`
}

// ThumbsUp is one enriched row of the like notification listing
type ThumbsUp struct {
	ID           int64  `json:"id"`
	ArticleID    int64  `json:"articleId"`
	LikeDate     string `json:"likeDate"`
	PraisePeople string `json:"praisePeople"`
	ArticleTitle string `json:"articleTitle"`
	IsRead       bool   `json:"isRead"`
}

// PageInfo describes one page of a paginated listing
type PageInfo struct {
	PageNum     int  `json:"pageNum"`
	PageSize    int  `json:"pageSize"`
	Total       int  `json:"total"`
	Pages       int  `json:"pages"`
	IsFirstPage bool `json:"isFirstPage"`
	IsLastPage  bool `json:"isLastPage"`
}

// NewPageInfo computes page metadata for total rows split into pages of size.
func NewPageInfo(pageNum, size, total int) PageInfo {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return PageInfo{
		PageNum:     pageNum,
		PageSize:    size,
		Total:       total,
		Pages:       pages,
		IsFirstPage: pageNum == 1,
		IsLastPage:  pageNum >= pages,
	}
}

// ThumbsUpPage is the result of the like notification listing
type ThumbsUpPage struct {
	Result          []ThumbsUp `json:"result"`
	MsgIsNotReadNum int        `json:"msgIsNotReadNum"`
	PageInfo        PageInfo   `json:"pageInfo"`
}

// LikeResult reports the outcome of a like request
type LikeResult struct {
	AlreadyLiked bool `json:"alreadyLiked"`
}
