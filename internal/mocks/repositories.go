package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users        map[int64]*models.User
	LookupError  error
	BatchLookups int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[int64]*models.User),
	}
}

// Add registers a user and returns it
func (m *MockUserRepository) Add(id int64, username, phone string) *models.User {
	u := &models.User{ID: id, Username: username, Phone: phone, CreatedAt: time.Now()}
	m.Users[id] = u
	return u
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) UsernamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	m.BatchLookups++
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	names := make(map[int64]string, len(ids))
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			names[id] = u.Username
		}
	}
	return names, nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles     map[int64]*models.Article
	NextID       int64
	InsertError  error
	DeleteError  error
	CreateCalls  int
	UpdateCalls  int
	DeleteCalls  int
	BatchLookups int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		NextID:   1,
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.CreateCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	now := time.Now()
	article.ID = m.NextID
	article.CreatedAt = now
	article.UpdatedAt = now
	m.NextID++

	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) (bool, error) {
	m.UpdateCalls++
	if m.InsertError != nil {
		return false, m.InsertError
	}
	existing, ok := m.Articles[article.ID]
	if !ok {
		return false, nil
	}
	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = time.Now()

	stored := *article
	m.Articles[article.ID] = &stored
	return true, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	return true, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) TitleByID(ctx context.Context, id int64) (string, error) {
	if a, ok := m.Articles[id]; ok {
		return a.Title, nil
	}
	return "", nil
}

func (m *MockArticleRepository) TitlesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	m.BatchLookups++
	titles := make(map[int64]string, len(ids))
	for _, id := range ids {
		if a, ok := m.Articles[id]; ok {
			titles[id] = a.Title
		}
	}
	return titles, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
// Article counts are derived from Articles when it is set.
type MockCategoryRepository struct {
	Names     []string
	Articles  *MockArticleRepository
	ListCalls int
	Error     error
}

func NewMockCategoryRepository(articles *MockArticleRepository) *MockCategoryRepository {
	return &MockCategoryRepository{Articles: articles}
}

func (m *MockCategoryRepository) ListNames(ctx context.Context) ([]string, error) {
	m.ListCalls++
	if m.Error != nil {
		return nil, m.Error
	}
	names := append([]string(nil), m.Names...)
	sort.Strings(names)
	return names, nil
}

func (m *MockCategoryRepository) ListWithCounts(ctx context.Context) ([]*models.Category, error) {
	names, err := m.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*models.Category, 0, len(names))
	for i, name := range names {
		c := &models.Category{ID: int64(i + 1), Name: name}
		if m.Articles != nil {
			for _, a := range m.Articles.Articles {
				if a.Category == name {
					c.ArticleCount++
				}
			}
		}
		list = append(list, c)
	}
	return list, nil
}

func (m *MockCategoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	if m.Error != nil {
		return false, m.Error
	}
	return m.index(name) >= 0, nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, name string) error {
	if m.Error != nil {
		return m.Error
	}
	if m.index(name) >= 0 {
		return repository.ErrDuplicate
	}
	m.Names = append(m.Names, name)
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, name string) (bool, error) {
	if m.Error != nil {
		return false, m.Error
	}
	i := m.index(name)
	if i < 0 {
		return false, nil
	}
	m.Names = append(m.Names[:i], m.Names[i+1:]...)
	return true, nil
}

func (m *MockCategoryRepository) index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}
	return -1
}

type articleLikeKey struct {
	articleID, likerID int64
}

// MockArticleLikeRepository is a mock implementation of ArticleLikeRepository.
// Like the store it rejects a second record for the same article and liker.
type MockArticleLikeRepository struct {
	Records     []*models.ArticleLikeRecord
	NextID      int64
	Now         func() time.Time
	InsertError error
}

func NewMockArticleLikeRepository() *MockArticleLikeRepository {
	return &MockArticleLikeRepository{NextID: 1, Now: time.Now}
}

func (m *MockArticleLikeRepository) Find(ctx context.Context, articleID, likerID int64) (*models.ArticleLikeRecord, error) {
	for _, r := range m.Records {
		if (articleLikeKey{r.ArticleID, r.LikerID}) == (articleLikeKey{articleID, likerID}) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockArticleLikeRepository) Insert(ctx context.Context, record *models.ArticleLikeRecord) (bool, error) {
	if m.InsertError != nil {
		return false, m.InsertError
	}
	if existing, _ := m.Find(ctx, record.ArticleID, record.LikerID); existing != nil {
		return false, nil
	}
	record.ID = m.NextID
	m.NextID++
	if record.LikeDate.IsZero() {
		record.LikeDate = m.Now()
	}
	stored := *record
	m.Records = append(m.Records, &stored)
	return true, nil
}

func (m *MockArticleLikeRepository) DeleteByArticleID(ctx context.Context, articleID int64) (int64, error) {
	kept := m.Records[:0]
	var n int64
	for _, r := range m.Records {
		if r.ArticleID == articleID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.Records = kept
	return n, nil
}

func (m *MockArticleLikeRepository) List(ctx context.Context, limit, offset int) ([]*models.ArticleLikeRecord, error) {
	sorted := append([]*models.ArticleLikeRecord(nil), m.Records...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].LikeDate.Equal(sorted[j].LikeDate) {
			return sorted[i].LikeDate.After(sorted[j].LikeDate)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if offset >= len(sorted) {
		return []*models.ArticleLikeRecord{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (m *MockArticleLikeRepository) Count(ctx context.Context) (int, error) {
	return len(m.Records), nil
}

func (m *MockArticleLikeRepository) CountUnread(ctx context.Context) (int, error) {
	n := 0
	for _, r := range m.Records {
		if !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *MockArticleLikeRepository) MarkRead(ctx context.Context, id int64) (bool, error) {
	for _, r := range m.Records {
		if r.ID == id {
			r.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

// MockCommentLikeRepository is a mock implementation of CommentLikeRepository
type MockCommentLikeRepository struct {
	Records []*models.CommentLikeRecord
	NextID  int64
}

func NewMockCommentLikeRepository() *MockCommentLikeRepository {
	return &MockCommentLikeRepository{NextID: 1}
}

func (m *MockCommentLikeRepository) Find(ctx context.Context, articleID, commentID, likerID int64) (*models.CommentLikeRecord, error) {
	for _, r := range m.Records {
		if r.ArticleID == articleID && r.CommentID == commentID && r.LikerID == likerID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockCommentLikeRepository) Insert(ctx context.Context, record *models.CommentLikeRecord) (bool, error) {
	if existing, _ := m.Find(ctx, record.ArticleID, record.CommentID, record.LikerID); existing != nil {
		return false, nil
	}
	record.ID = m.NextID
	m.NextID++
	if record.LikeDate.IsZero() {
		record.LikeDate = time.Now()
	}
	stored := *record
	m.Records = append(m.Records, &stored)
	return true, nil
}

func (m *MockCommentLikeRepository) DeleteByArticleID(ctx context.Context, articleID int64) (int64, error) {
	kept := m.Records[:0]
	var n int64
	for _, r := range m.Records {
		if r.ArticleID == articleID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.Records = kept
	return n, nil
}

// Store bundles the typed mocks with the Repositories view handed to services
type Store struct {
	Users        *MockUserRepository
	Articles     *MockArticleRepository
	Categories   *MockCategoryRepository
	ArticleLikes *MockArticleLikeRepository
	CommentLikes *MockCommentLikeRepository
}

func NewStore() *Store {
	articles := NewMockArticleRepository()
	return &Store{
		Users:        NewMockUserRepository(),
		Articles:     articles,
		Categories:   NewMockCategoryRepository(articles),
		ArticleLikes: NewMockArticleLikeRepository(),
		CommentLikes: NewMockCommentLikeRepository(),
	}
}

// Repositories returns the store as repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:        s.Users,
		Article:     s.Articles,
		Category:    s.Categories,
		ArticleLike: s.ArticleLikes,
		CommentLike: s.CommentLikes,
	}
}
