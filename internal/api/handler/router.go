package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

// Middlewares used when mounting: authentication, the admin gate and the
// auth-endpoint rate limiter.
type Middlewares struct {
	Auth        gin.HandlerFunc
	Admin       gin.HandlerFunc
	RateLimiter gin.HandlerFunc
}

// NewRouter mounts the whole API under /api/v1.
func NewRouter(h Handlers, mw Middlewares) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	h.Auth.RegisterRoutes(api.Group("/auth"), mw.RateLimiter)
	h.User.RegisterRoutes(api.Group("/users"), mw.Auth, mw.Admin)
	h.Category.RegisterRoutes(api.Group("/categories"), mw.Auth, mw.Admin)
	h.Genre.RegisterRoutes(api.Group("/genres"), mw.Auth, mw.Admin)

	titles := api.Group("/titles")
	h.Title.RegisterRoutes(titles, mw.Auth, mw.Admin)
	h.Review.RegisterRoutes(titles, mw.Auth)
	h.Comment.RegisterRoutes(titles, mw.Auth)

	return r
}
