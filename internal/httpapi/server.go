// Package httpapi exposes the card repository over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	store "github.com/likearthian/cardstore"
	"github.com/likearthian/cardstore/card"
)

// CardStore is the part of the card repository the API uses.
type CardStore interface {
	FilterBy(ctx context.Context, filter store.Filter, options ...store.QueryOption) (store.RowIterator[card.Card], error)
	FindByID(ctx context.Context, id string) (*card.Card, error)
	InsertOne(ctx context.Context, value card.Card) error
	InsertMany(ctx context.Context, values []card.Card) error
	ReplaceOne(ctx context.Context, value card.Card) error
	DeleteByID(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter store.Filter) error
}

// Config holds the router settings
type Config struct {
	CORS    CORSConfig
	Metrics http.Handler
}

// NewRouter builds the API routes over cards.
func NewRouter(cards CardStore, cfg Config, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), CORSMiddleware(cfg.CORS))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	h := &cardHandler{cards: cards}
	api := router.Group("/api/cards")
	api.GET("", h.list)
	api.GET("/:id", h.get)
	api.POST("", h.create)
	api.POST("/batch", h.createBatch)
	api.PUT("/:id", h.replace)
	api.DELETE("/:id", h.delete)
	api.DELETE("", h.deleteMatching)

	return router
}

// RequestLogger logs one entry per request.
func RequestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		})

		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.WithField("errors", c.Errors.String()).Error("request failed")
			return
		}

		entry.Debug("request served")
	}
}
