package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/instalite/config"
	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/internal/cache"
	"github.com/d60-Lab/instalite/internal/model"
	"github.com/d60-Lab/instalite/internal/repository"
	"github.com/d60-Lab/instalite/internal/service"
	"github.com/d60-Lab/instalite/pkg/response"
	"github.com/d60-Lab/instalite/pkg/token"
)

// newTestRouter 只挂 JSON API 路由；页面路由依赖模板文件，单测不覆盖
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}, &model.Follow{},
	))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	cfg := config.Config{UploadDir: t.TempDir()}
	authSvc := service.NewAuthService(userRepo, token.NewManager("test-secret", time.Minute))
	counts := cache.NewProfileCounterCache(nil, followRepo, time.Minute)
	h := NewHandler(
		cfg,
		authSvc,
		service.NewUserService(userRepo),
		service.NewPostService(postRepo, cfg.UploadDir),
		service.NewCommentService(commentRepo, postRepo),
		service.NewLikeService(likeRepo, postRepo),
		service.NewRelationshipService(followRepo, userRepo, counts),
		service.NewFeedService(postRepo, followRepo, likeRepo, commentRepo),
	)

	r := gin.New()
	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/token", h.Token)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", middleware.Auth(authSvc), h.Me)

	posts := api.Group("/posts", middleware.Auth(authSvc))
	posts.POST("", h.CreatePost)
	posts.GET("/feed/me", h.Feed)
	posts.DELETE("/:id", h.DeletePost)

	users := api.Group("/users")
	users.GET("/:username", middleware.AuthOptional(authSvc), h.GetProfile)
	users.POST("/:username/follow", middleware.Auth(authSvc), h.Follow)
	return r
}

func doJSON(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"password123"}`, name, name)
	w := doJSON(r, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	form := url.Values{"username": {name}, "password": {"password123"}}
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.Data.TokenType)
	require.NotEmpty(t, resp.Data.AccessToken)

	// 登录应同时种下会话 cookie
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	require.True(t, found, "session cookie not set")
	return resp.Data.AccessToken
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)
	tok := registerAndLogin(t, r, "dave")

	w := doJSON(r, http.MethodGet, "/api/auth/me", "", tok)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Data service.UserPublic `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "dave", me.Data.Username)

	// 未带凭证
	w = doJSON(r, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登出清除 cookie
	w = doJSON(r, http.MethodPost, "/api/auth/logout", "", tok)
	assert.Equal(t, http.StatusNoContent, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			assert.Equal(t, -1, c.MaxAge)
		}
	}
}

func TestRegisterRejectsBadPayload(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"x","email":"bad","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 重复注册 → 400
	registerAndLogin(t, r, "dupe")
	w = doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"dupe","email":"other@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "already exists")
}

func TestPostAndFeedEndpoints(t *testing.T) {
	r := newTestRouter(t)
	aTok := registerAndLogin(t, r, "poster")
	bTok := registerAndLogin(t, r, "reader")

	// multipart 纯文字发帖
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("caption", "hello world"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+aTok)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data service.PostView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "hello world", created.Data.Caption)

	// reader 关注 poster 后时间线能看到帖子
	w = doJSON(r, http.MethodPost, "/api/users/poster/follow", "", bTok)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/posts/feed/me", "", bTok)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Data []service.PostView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed.Data, 1)
	assert.Equal(t, created.Data.ID, feed.Data[0].ID)

	// 他人删帖被拒，作者删帖成功
	path := fmt.Sprintf("/api/posts/%d", created.Data.ID)
	w = doJSON(r, http.MethodDelete, path, "", bTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(r, http.MethodDelete, path, "", aTok)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProfileEndpoint(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "famous")
	fanTok := registerAndLogin(t, r, "fan")

	w := doJSON(r, http.MethodPost, "/api/users/famous/follow", "", fanTok)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 自关注被拒
	w = doJSON(r, http.MethodPost, "/api/users/fan/follow", "", fanTok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/users/famous", "", fanTok)
	require.Equal(t, http.StatusOK, w.Code)
	var prof struct {
		Data service.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prof))
	assert.Equal(t, int64(1), prof.Data.FollowerCount)
	assert.True(t, prof.Data.FollowedByMe)

	// 匿名也能看，但没有关注状态
	w = doJSON(r, http.MethodGet, "/api/users/famous", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prof))
	assert.False(t, prof.Data.FollowedByMe)

	w = doJSON(r, http.MethodGet, "/api/users/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
