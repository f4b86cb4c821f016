package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blog-api/internal/api"
	"github.com/blog-api/internal/auth"
	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/mocks"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/blog-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const adminPhone = "13800000000"

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testEnv struct {
	router   *gin.Engine
	store    *mocks.Store
	verifier *auth.Verifier
	health   *stubHealth
}

type stubHealth struct {
	err   error
	stats sql.DBStats
}

func (s *stubHealth) HealthCheck(ctx context.Context) error {
	return s.err
}

func (s *stubHealth) Stats() sql.DBStats {
	return s.stats
}

type envelope struct {
	Code    models.Code     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mocks.NewStore()
	store.Users.Add(1, "admin", adminPhone)
	store.Users.Add(2, "reader", "13900000000")

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, AdminPhones: []string{adminPhone}},
		Upload: config.UploadConfig{
			Dir:           t.TempDir(),
			PublicBaseURL: "http://localhost:8080",
			MaxUploadSize: 1 << 20,
		},
	}

	images := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicBaseURL, cfg.Upload.MaxUploadSize)
	log := zerolog.Nop()
	services := service.NewServices(store.Repositories(), mocks.NewMockCategoryCache(), images, cfg, log)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	health := &stubHealth{}

	return &testEnv{
		router:   api.NewRouter(services, verifier, health, cfg, log),
		store:    store,
		verifier: verifier,
		health:   health,
	}
}

func (e *testEnv) do(t *testing.T, method, target, user string, body *strings.Reader) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != "" {
		token, err := e.verifier.Issue(user)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int, code models.Code) envelope {
	t.Helper()
	if w.Code != status {
		t.Errorf("Expected status %d, got %d (%s)", status, w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp.Code != code {
		t.Errorf("Expected code %d, got %d (%s)", code, resp.Code, resp.Message)
	}
	return resp
}

func articleForm(title string) *strings.Reader {
	v := url.Values{}
	v.Set("articleTitle", title)
	v.Set("articleContent", "content of "+title)
	v.Set("articleSummary", "summary")
	v.Set("articleGrade", "public")
	v.Add("articleTags", "go")
	v.Add("articleTags", "gin")
	return strings.NewReader(v.Encode())
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "GET", "/health", "", nil)
	resp := expect(t, w, http.StatusOK, models.CodeSuccess)

	var data map[string]interface{}
	json.Unmarshal(resp.Data, &data)
	if data["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", data["status"])
	}
	if data["service"] != "blog-api" {
		t.Errorf("Expected service name, got %v", data["service"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
}

func TestHealthEndpoint_PoolStats(t *testing.T) {
	env := setupTestRouter(t)
	env.health.stats = sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3, WaitCount: 7}

	resp := expect(t, env.do(t, "GET", "/health", "", nil), http.StatusOK, models.CodeSuccess)

	var data struct {
		Database string `json:"database"`
		Pool     struct {
			OpenConnections int   `json:"open_connections"`
			InUse           int   `json:"in_use"`
			Idle            int   `json:"idle"`
			WaitCount       int64 `json:"wait_count"`
		} `json:"pool"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if data.Database != "ok" {
		t.Errorf("Expected database ok, got %q", data.Database)
	}
	if data.Pool.OpenConnections != 4 || data.Pool.InUse != 1 || data.Pool.Idle != 3 || data.Pool.WaitCount != 7 {
		t.Errorf("Unexpected pool stats: %+v", data.Pool)
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	env := setupTestRouter(t)
	env.health.err = errors.New("connection refused")

	w := env.do(t, "GET", "/health", "", nil)
	expect(t, w, http.StatusServiceUnavailable, models.CodeServerException)
}

func TestPublishArticle_Unauthenticated(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle", "", articleForm("hello"))
	expect(t, w, http.StatusUnauthorized, models.CodeUnauthorized)

	req := httptest.NewRequest("POST", "/publishArticle", articleForm("hello"))
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	expect(t, w, http.StatusUnauthorized, models.CodeUnauthorized)

	if env.store.Articles.CreateCalls != 0 {
		t.Errorf("Expected no store writes, got %d", env.store.Articles.CreateCalls)
	}
}

func TestPublishArticle_UnknownUser(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle", "ghost", articleForm("hello"))
	expect(t, w, http.StatusUnauthorized, models.CodeUnauthorized)
}

func TestPublishArticle_NonAdmin(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle", "reader", articleForm("hello"))
	expect(t, w, http.StatusForbidden, models.CodePublishArticleNoPermission)

	if env.store.Articles.CreateCalls != 0 || env.store.Articles.UpdateCalls != 0 {
		t.Error("Expected no store mutation for non-admin publish")
	}
}

func TestPublishArticle_Create(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle", "admin", articleForm("hello"))
	resp := expect(t, w, http.StatusOK, models.CodeSuccess)

	var result models.PublishResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.ArticleID != 1 {
		t.Errorf("Expected article id 1, got %d", result.ArticleID)
	}
	if result.Author != "admin" {
		t.Errorf("Expected author 'admin', got %q", result.Author)
	}
	if result.ArticleURL != "/article/1" {
		t.Errorf("Expected article url, got %q", result.ArticleURL)
	}

	stored := env.store.Articles.Articles[1]
	if stored == nil {
		t.Fatal("Expected article to be stored")
	}
	if stored.Author != "admin" || stored.Type != "original" || len(stored.Tags) != 2 {
		t.Errorf("Unexpected stored article: %+v", stored)
	}
}

func TestPublishArticle_ZeroIDCreates(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle?id=0", "admin", articleForm("zero"))
	expect(t, w, http.StatusOK, models.CodeSuccess)

	if env.store.Articles.CreateCalls != 1 || env.store.Articles.UpdateCalls != 0 {
		t.Error("Expected id=0 to create")
	}
}

func TestPublishArticle_Update(t *testing.T) {
	env := setupTestRouter(t)
	env.do(t, "POST", "/publishArticle", "admin", articleForm("first"))

	w := env.do(t, "POST", "/publishArticle?id=1", "admin", articleForm("second"))
	expect(t, w, http.StatusOK, models.CodeSuccess)

	if got := env.store.Articles.Articles[1].Title; got != "second" {
		t.Errorf("Expected updated title, got %q", got)
	}

	w = env.do(t, "POST", "/publishArticle?id=99", "admin", articleForm("missing"))
	expect(t, w, http.StatusNotFound, models.CodeArticleNotExist)
}

func TestPublishArticle_NonNumericID(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle?id=abc", "admin", articleForm("hello"))
	expect(t, w, http.StatusBadRequest, models.CodeInvalidParameter)

	if env.store.Articles.CreateCalls != 0 {
		t.Error("Expected no store writes for malformed id")
	}
}

func TestPublishArticle_ValidationErrors(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "POST", "/publishArticle", "admin", strings.NewReader("articleContent=x"))
	resp := expect(t, w, http.StatusBadRequest, models.CodeInvalidParameter)

	var fields []map[string]interface{}
	json.Unmarshal(resp.Data, &fields)
	if len(fields) == 0 || fields[0]["field"] != "articleTitle" {
		t.Errorf("Expected a title field error, got %s", string(resp.Data))
	}
}

func TestCanYouWrite(t *testing.T) {
	env := setupTestRouter(t)

	expect(t, env.do(t, "GET", "/canYouWrite", "admin", nil), http.StatusOK, models.CodeSuccess)
	expect(t, env.do(t, "GET", "/canYouWrite", "reader", nil), http.StatusOK, models.CodeFail)
	expect(t, env.do(t, "GET", "/canYouWrite", "", nil), http.StatusUnauthorized, models.CodeUnauthorized)
}

func TestDeleteArticle(t *testing.T) {
	env := setupTestRouter(t)
	env.do(t, "POST", "/publishArticle", "admin", articleForm("doomed"))
	env.do(t, "POST", "/articleThumbsUp?articleId=1", "reader", nil)

	w := env.do(t, "GET", "/deleteArticle?id=1", "admin", nil)
	expect(t, w, http.StatusOK, models.CodeSuccess)

	if len(env.store.Articles.Articles) != 0 {
		t.Error("Expected article to be deleted")
	}
	if len(env.store.ArticleLikes.Records) != 0 {
		t.Error("Expected article likes to be deleted with the article")
	}

	// Deleting again is still a success.
	w = env.do(t, "GET", "/deleteArticle?id=1", "admin", nil)
	expect(t, w, http.StatusOK, models.CodeSuccess)
}

func TestDeleteArticle_BadID(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "GET", "/deleteArticle?id=", "admin", nil)
	expect(t, w, http.StatusBadRequest, models.CodeDeleteArticleFail)

	w = env.do(t, "GET", "/deleteArticle?id=x1", "admin", nil)
	expect(t, w, http.StatusBadRequest, models.CodeInvalidParameter)

	if env.store.Articles.DeleteCalls != 0 {
		t.Errorf("Expected store untouched, got %d delete calls", env.store.Articles.DeleteCalls)
	}
}

func TestDeleteArticle_RequiresAdmin(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, "GET", "/deleteArticle?id=1", "reader", nil)
	expect(t, w, http.StatusForbidden, models.CodePublishArticleNoPermission)
}

func TestCategories(t *testing.T) {
	env := setupTestRouter(t)
	form := func(name, op string) *strings.Reader {
		return strings.NewReader(url.Values{"categoryName": {name}, "type": {op}}.Encode())
	}

	expect(t, env.do(t, "POST", "/updateCategory", "admin", form("golang", "1")), http.StatusOK, models.CodeSuccess)
	expect(t, env.do(t, "POST", "/updateCategory", "admin", form("golang", "1")), http.StatusConflict, models.CodeCategoryAlreadyExist)
	expect(t, env.do(t, "POST", "/updateCategory", "admin", form("rust", "2")), http.StatusNotFound, models.CodeCategoryNotExist)
	expect(t, env.do(t, "POST", "/updateCategory", "admin", form("rust", "9")), http.StatusBadRequest, models.CodeInvalidParameter)
	expect(t, env.do(t, "POST", "/updateCategory", "admin", form("rust", "add")), http.StatusBadRequest, models.CodeInvalidParameter)
	expect(t, env.do(t, "POST", "/updateCategory", "reader", form("java", "1")), http.StatusForbidden, models.CodePublishArticleNoPermission)
	expect(t, env.do(t, "POST", "/updateCategory", "admin", form(strings.Repeat("x", models.MaxCategoryNameLength+1), "1")), http.StatusBadRequest, models.CodeInvalidParameter)

	resp := expect(t, env.do(t, "GET", "/findCategoriesName", "", nil), http.StatusOK, models.CodeSuccess)
	var names []string
	json.Unmarshal(resp.Data, &names)
	if len(names) != 1 || names[0] != "golang" {
		t.Errorf("Expected [golang], got %v", names)
	}

	resp = expect(t, env.do(t, "GET", "/getArticleCategories", "", nil), http.StatusOK, models.CodeSuccess)
	var listing struct {
		Result []models.Category `json:"result"`
	}
	json.Unmarshal(resp.Data, &listing)
	if len(listing.Result) != 1 || listing.Result[0].Name != "golang" {
		t.Errorf("Unexpected categories: %s", string(resp.Data))
	}
}

func TestArticleThumbsUp(t *testing.T) {
	env := setupTestRouter(t)
	env.do(t, "POST", "/publishArticle", "admin", articleForm("liked"))

	resp := expect(t, env.do(t, "POST", "/articleThumbsUp?articleId=1", "reader", nil), http.StatusOK, models.CodeSuccess)
	var res models.LikeResult
	json.Unmarshal(resp.Data, &res)
	if res.AlreadyLiked {
		t.Error("Expected first like to be recorded")
	}

	resp = expect(t, env.do(t, "POST", "/articleThumbsUp?articleId=1", "reader", nil), http.StatusOK, models.CodeArticleHasThumbsUp)
	json.Unmarshal(resp.Data, &res)
	if !res.AlreadyLiked {
		t.Error("Expected second like to report already liked")
	}

	if len(env.store.ArticleLikes.Records) != 1 {
		t.Errorf("Expected exactly one like record, got %d", len(env.store.ArticleLikes.Records))
	}

	expect(t, env.do(t, "POST", "/articleThumbsUp?articleId=5", "reader", nil), http.StatusNotFound, models.CodeArticleNotExist)
	expect(t, env.do(t, "POST", "/articleThumbsUp?articleId=one", "reader", nil), http.StatusBadRequest, models.CodeInvalidParameter)
	expect(t, env.do(t, "POST", "/articleThumbsUp?articleId=1", "", nil), http.StatusUnauthorized, models.CodeUnauthorized)
}

func TestCommentThumbsUp(t *testing.T) {
	env := setupTestRouter(t)
	env.do(t, "POST", "/publishArticle", "admin", articleForm("discussed"))

	expect(t, env.do(t, "POST", "/commentThumbsUp?articleId=1&commentId=3", "reader", nil), http.StatusOK, models.CodeSuccess)
	expect(t, env.do(t, "POST", "/commentThumbsUp?articleId=1&commentId=3", "reader", nil), http.StatusOK, models.CodeArticleHasThumbsUp)
	expect(t, env.do(t, "POST", "/commentThumbsUp?articleId=1", "reader", nil), http.StatusBadRequest, models.CodeInvalidParameter)
}

func TestGetArticleThumbsUp(t *testing.T) {
	env := setupTestRouter(t)
	for i := 0; i < 3; i++ {
		env.do(t, "POST", "/publishArticle", "admin", articleForm("post"))
	}
	for _, id := range []string{"1", "2", "3"} {
		env.do(t, "POST", "/articleThumbsUp?articleId="+id, "reader", nil)
	}

	resp := expect(t, env.do(t, "GET", "/getArticleThumbsUp?rows=2&pageNum=1", "admin", nil), http.StatusOK, models.CodeSuccess)
	var page models.ThumbsUpPage
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Result) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(page.Result))
	}
	if page.PageInfo.Total != 3 || page.PageInfo.Pages != 2 || page.MsgIsNotReadNum != 3 {
		t.Errorf("Unexpected page info: %+v unread=%d", page.PageInfo, page.MsgIsNotReadNum)
	}
	if page.Result[0].PraisePeople != "reader" || page.Result[0].ArticleTitle != "post" {
		t.Errorf("Expected enriched rows, got %+v", page.Result[0])
	}

	expect(t, env.do(t, "POST", "/readThisThumbsUp?id=1", "admin", nil), http.StatusOK, models.CodeSuccess)
	expect(t, env.do(t, "POST", "/readThisThumbsUp?id=99", "admin", nil), http.StatusNotFound, models.CodeInvalidParameter)

	resp = expect(t, env.do(t, "GET", "/getArticleThumbsUp", "admin", nil), http.StatusOK, models.CodeSuccess)
	json.Unmarshal(resp.Data, &page)
	if page.MsgIsNotReadNum != 2 || page.PageInfo.PageSize != 10 {
		t.Errorf("Expected defaults and 2 unread, got %+v unread=%d", page.PageInfo, page.MsgIsNotReadNum)
	}

	resp = expect(t, env.do(t, "GET", "/getArticleThumbsUp?rows=100&pageNum=9223372036854775807", "admin", nil), http.StatusOK, models.CodeSuccess)
	page = models.ThumbsUpPage{}
	json.Unmarshal(resp.Data, &page)
	if len(page.Result) != 0 || page.PageInfo.Total != 3 || !page.PageInfo.IsLastPage {
		t.Errorf("Expected empty last page with totals, got %+v", page)
	}

	expect(t, env.do(t, "GET", "/getArticleThumbsUp?rows=ten", "admin", nil), http.StatusBadRequest, models.CodeInvalidParameter)
	expect(t, env.do(t, "GET", "/getArticleThumbsUp", "reader", nil), http.StatusForbidden, models.CodePublishArticleNoPermission)
}

type uploadResult struct {
	Success int    `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

func (e *testEnv) upload(t *testing.T, user, filename string, content []byte) (*httptest.ResponseRecorder, uploadResult) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile(api.ImageField, filename)
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest("POST", "/uploadImage", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	token, _ := e.verifier.Issue(user)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var res uploadResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode upload response %q: %v", w.Body.String(), err)
	}
	return w, res
}

func TestUploadImage(t *testing.T) {
	env := setupTestRouter(t)

	w, res := env.upload(t, "admin", "pic.png", pngHeader)
	if w.Code != http.StatusOK || res.Success != 1 {
		t.Fatalf("Expected success, got %d %+v", w.Code, res)
	}
	if !strings.HasPrefix(res.URL, "http://localhost:8080/blogArticles/") || !strings.HasSuffix(res.URL, ".png") {
		t.Errorf("Unexpected url %q", res.URL)
	}

	// The stored file is served back under its public path.
	path := strings.TrimPrefix(res.URL, "http://localhost:8080")
	req := httptest.NewRequest("GET", path, nil)
	served := httptest.NewRecorder()
	env.router.ServeHTTP(served, req)
	if served.Code != http.StatusOK || !bytes.Equal(served.Body.Bytes(), pngHeader) {
		t.Errorf("Expected uploaded bytes at %s, got %d", path, served.Code)
	}
}

func TestUploadImage_NotAnImage(t *testing.T) {
	env := setupTestRouter(t)

	// The declared extension is ignored; the bytes decide.
	w, res := env.upload(t, "admin", "fake.png", []byte("just some text"))
	if w.Code != http.StatusBadRequest || res.Success != 0 {
		t.Errorf("Expected rejection, got %d %+v", w.Code, res)
	}
	if res.URL != "" {
		t.Errorf("Expected no url, got %q", res.URL)
	}
}

func TestUploadImage_NonAdmin(t *testing.T) {
	env := setupTestRouter(t)

	w, res := env.upload(t, "reader", "pic.png", pngHeader)
	if w.Code != http.StatusForbidden || res.Success != 0 {
		t.Errorf("Expected forbidden, got %d %+v", w.Code, res)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/publishArticle", nil)
	req.Header.Set("Origin", "http://blog.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
}
