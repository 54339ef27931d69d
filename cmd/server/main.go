package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/h662/x-clone-go/internal/auth"
	"github.com/h662/x-clone-go/internal/cache"
	"github.com/h662/x-clone-go/internal/comment"
	"github.com/h662/x-clone-go/internal/config"
	"github.com/h662/x-clone-go/internal/database"
	"github.com/h662/x-clone-go/internal/like"
	"github.com/h662/x-clone-go/internal/middleware"
	"github.com/h662/x-clone-go/internal/post"
	"github.com/h662/x-clone-go/internal/token"
	"github.com/h662/x-clone-go/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	database.Connect(cfg.DBUrl)
	database.Migrate(&user.User{}, &post.Post{}, &comment.Comment{}, &like.Like{})

	tokens, err := token.NewService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	pages := cache.New(cfg.RedisAddr, "posts")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/user", user.Register(tokens))
	r.POST("/auth", auth.Login(tokens))

	r.GET("/post", post.List(pages))
	r.GET("/post/user/:userId", post.ListByUser)
	r.GET("/post/:id", post.Get)
	r.GET("/comment", comment.List)
	r.GET("/comment/:id", comment.Get)

	protected := r.Group("/", middleware.RequireAuth(tokens))
	protected.POST("/post", post.Create(pages))
	protected.PUT("/post/:id", post.Update(pages))
	protected.DELETE("/post/:id", post.Delete(pages))
	protected.POST("/comment", comment.Create)
	protected.PUT("/comment/:id", comment.Update)
	protected.DELETE("/comment/:id", comment.Delete)
	protected.PUT("/like", like.Mark)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
