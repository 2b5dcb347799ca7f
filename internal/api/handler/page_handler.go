package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/instalite/internal/api/middleware"
)

// 页面渲染与表单动作。挂在 AuthOptional 之下：
// 游客可看首页，需要登录的页面重定向到 /login。

const pageFeedLimit = 50
const homeFeedLimit = 20

// avatarURL 头像由 DiceBear 按用户名生成
func avatarURL(username string) string {
	return "https://api.dicebear.com/8.x/thumbs/svg?seed=" + username
}

// backTo 303 回跳到来源页，无 Referer 时退回 fallback
func backTo(c *gin.Context, fallback string) {
	if ref := c.GetHeader("Referer"); ref != "" {
		c.Redirect(http.StatusSeeOther, ref)
		return
	}
	c.Redirect(http.StatusSeeOther, fallback)
}

func redirect(c *gin.Context, url string) {
	c.Redirect(http.StatusSeeOther, url)
}

// HomePage 最新帖子，游客可见
func (h *Handler) HomePage(c *gin.Context) {
	me := middleware.CurrentUser(c)
	posts, err := h.postSvc.ListAll(c.Request.Context(), homeFeedLimit)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	var viewerID uint
	if me != nil {
		viewerID = me.ID
	}
	views, err := h.feedSvc.Decorate(c.Request.Context(), viewerID, posts)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"app":    h.cfg.AppName,
		"me":     me,
		"posts":  views,
		"avatar": avatarURL,
	})
}

// AboutPage 静态说明页
func (h *Handler) AboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"app": h.cfg.AppName,
		"me":  middleware.CurrentUser(c),
	})
}

// FeedPage 个人时间线页，未登录跳转 /login
func (h *Handler) FeedPage(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	views, err := h.feedSvc.Assemble(c.Request.Context(), me, pageFeedLimit)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "feed.html", gin.H{
		"app":    h.cfg.AppName,
		"me":     me,
		"posts":  views,
		"avatar": avatarURL,
	})
}

// ProfilePage 用户主页，未登录跳转 /login
func (h *Handler) ProfilePage(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	username := c.Param("username")
	profile, err := h.relSvc.Profile(c.Request.Context(), username, me)
	if err != nil {
		redirect(c, "/")
		return
	}
	posts, err := h.postSvc.ListByAuthor(c.Request.Context(), profile.User.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	views, err := h.feedSvc.Decorate(c.Request.Context(), me.ID, posts)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"app":     h.cfg.AppName,
		"me":      me,
		"profile": profile,
		"posts":   views,
		"avatar":  avatarURL,
	})
}

// LoginPage 已登录访客直接进 /app
func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, "/app")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"app": h.cfg.AppName})
}

// LoginSubmit 表单登录；失败回显错误
func (h *Handler) LoginSubmit(c *gin.Context) {
	tok, _, err := h.authSvc.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"app":   h.cfg.AppName,
			"error": "Invalid username or password.",
		})
		return
	}
	h.setSessionCookie(c, tok)
	redirect(c, "/app")
}

// RegisterPage 已登录访客直接进 /app
func (h *Handler) RegisterPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		redirect(c, "/app")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"app": h.cfg.AppName})
}

// RegisterSubmit 注册成功直接发会话 cookie 进 /app
func (h *Handler) RegisterSubmit(c *gin.Context) {
	user, err := h.authSvc.Register(c.Request.Context(),
		c.PostForm("username"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"app":   h.cfg.AppName,
			"error": err.Error(),
		})
		return
	}
	tok, _, err := h.authSvc.Login(c.Request.Context(), user.Username, c.PostForm("password"))
	if err != nil {
		redirect(c, "/login")
		return
	}
	h.setSessionCookie(c, tok)
	redirect(c, "/app")
}

// LogoutAction 清 cookie 回首页
func (h *Handler) LogoutAction(c *gin.Context) {
	h.clearSessionCookie(c)
	redirect(c, "/")
}

// PostAction 页面发帖，支持外链图片
func (h *Handler) PostAction(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	var imagePath *string
	if u := strings.TrimSpace(c.PostForm("image_url")); u != "" {
		imagePath = &u
	}
	if _, err := h.postSvc.Create(c.Request.Context(), me, c.PostForm("caption"), imagePath); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	backTo(c, "/app")
}

// LikeAction / UnlikeAction 帖子不存在时不报错，直接回跳
func (h *Handler) LikeAction(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	if postID, err := parseID(c, "post_id"); err == nil {
		_ = h.likeSvc.Like(c.Request.Context(), me.ID, postID)
	}
	backTo(c, "/app")
}

func (h *Handler) UnlikeAction(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	if postID, err := parseID(c, "post_id"); err == nil {
		_ = h.likeSvc.Unlike(c.Request.Context(), me.ID, postID)
	}
	backTo(c, "/app")
}

// CommentAction 空评论静默忽略
func (h *Handler) CommentAction(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	text := strings.TrimSpace(c.PostForm("text"))
	if text != "" {
		if postID, err := parseID(c, "post_id"); err == nil {
			_, _ = h.commentSvc.Add(c.Request.Context(), me, postID, text)
		}
	}
	backTo(c, "/app")
}

func (h *Handler) FollowAction(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	username := c.Param("username")
	_ = h.relSvc.Follow(c.Request.Context(), me, username)
	backTo(c, "/profile/"+username)
}

func (h *Handler) UnfollowAction(c *gin.Context) {
	me := middleware.CurrentUser(c)
	if me == nil {
		redirect(c, "/login")
		return
	}
	username := c.Param("username")
	_ = h.relSvc.Unfollow(c.Request.Context(), me, username)
	backTo(c, "/profile/"+username)
}
