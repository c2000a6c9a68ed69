// Package server exposes the discovery pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"newschomp/internal/domain"
	"newschomp/internal/geo"
	"newschomp/internal/seen"
	"newschomp/internal/session"
	"newschomp/internal/source"
)

const sessionCookie = "newschomp_session"

// ArticleFinder is the slice of the pipeline the HTTP layer consumes.
type ArticleFinder interface {
	FetchFresh(ctx context.Context, keys []string, query string, seenList *seen.List) (*domain.Article, error)
	FetchURL(ctx context.Context, src source.Source, rawURL string) (*domain.Article, error)
}

// Server wires echo routes to the pipeline, registry, and session store.
type Server struct {
	echo       *echo.Echo
	pipeline   ArticleFinder
	registry   *source.Registry
	sessions   *session.Store
	categories map[string][]string
	logger     *slog.Logger
}

// New builds the HTTP server.
func New(pipeline ArticleFinder, registry *source.Registry, sessions *session.Store, categories map[string][]string, logger *slog.Logger) *Server {
	s := &Server{
		echo:       echo.New(),
		pipeline:   pipeline,
		registry:   registry,
		sessions:   sessions,
		categories: categories,
		logger:     logger,
	}

	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())

	s.echo.POST("/api/articles/:category", s.refreshArticle)
	s.echo.POST("/api/articles/lookup", s.lookupArticle)
	s.echo.POST("/api/sources/nearest", s.nearestSource)
	s.echo.POST("/api/sources/:key/article", s.fetchFromSource)
	s.echo.GET("/api/sources/locations", s.listLocations)

	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type articleResponse struct {
	Success    bool            `json:"success"`
	Article    *domain.Article `json:"article"`
	SourceName string          `json:"source_name,omitempty"`
	Category   string          `json:"category,omitempty"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

// refreshArticle serves the next unseen article for a category.
func (s *Server) refreshArticle(c echo.Context) error {
	category := c.Param("category")
	keys, ok := s.categories[category]
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid category")
	}

	sess := s.clientSession(c)

	var (
		article *domain.Article
		err     error
	)
	sess.WithSeen(category, func(seenList *seen.List) {
		article, err = s.pipeline.FetchFresh(c.Request().Context(), keys, "", seenList)
		if err == nil && article != nil {
			seenList.Add(article.URL)
		}
	})
	if err != nil {
		s.errorLog("refresh failed", "category", category, "error", err)
		return fail(c, http.StatusInternalServerError, "article fetch failed")
	}
	if article == nil {
		// Everything currently offered has been seen; expected, not a fault.
		return fail(c, http.StatusOK, "no new articles found")
	}

	return c.JSON(http.StatusOK, articleResponse{Success: true, Article: article, Category: category})
}

// fetchFromSource serves the next unseen article from one named source.
func (s *Server) fetchFromSource(c echo.Context) error {
	key := c.Param("key")
	src := s.registry.Get(key)
	if src == nil {
		return fail(c, http.StatusBadRequest, "source \""+key+"\" not available")
	}

	sess := s.clientSession(c)

	var (
		article *domain.Article
		err     error
	)
	sess.WithSeen("local", func(seenList *seen.List) {
		article, err = s.pipeline.FetchFresh(c.Request().Context(), []string{src.Key()}, "", seenList)
		if err == nil && article != nil {
			seenList.Add(article.URL)
		}
	})
	if err != nil {
		s.errorLog("source fetch failed", "source", src.Key(), "error", err)
		return fail(c, http.StatusInternalServerError, "article fetch failed")
	}
	if article == nil {
		return fail(c, http.StatusOK, "no new articles from "+src.Name())
	}

	return c.JSON(http.StatusOK, articleResponse{
		Success:    true,
		Article:    article,
		SourceName: src.Name(),
		Category:   s.categoryOf(src.Key()),
	})
}

// lookupArticle fetches one specific URL through its owning source.
func (s *Server) lookupArticle(c echo.Context) error {
	var payload struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	rawURL := strings.TrimSpace(payload.URL)
	if rawURL == "" {
		return fail(c, http.StatusBadRequest, "url is required")
	}

	src := s.registry.GetByURL(rawURL)
	if src == nil {
		return fail(c, http.StatusBadRequest, "no source found for url")
	}

	article, err := s.pipeline.FetchURL(c.Request().Context(), src, rawURL)
	if err != nil {
		s.errorLog("lookup failed", "url", rawURL, "error", err)
		return fail(c, http.StatusBadGateway, "failed to fetch article")
	}
	if article == nil {
		return fail(c, http.StatusOK, "failed to extract article data")
	}

	return c.JSON(http.StatusOK, articleResponse{
		Success:    true,
		Article:    article,
		SourceName: src.Name(),
		Category:   s.categoryOf(src.Key()),
	})
}

// nearestSource resolves the closest location-tagged source.
func (s *Server) nearestSource(c echo.Context) error {
	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "invalid location data")
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return fail(c, http.StatusBadRequest, "invalid location data")
	}

	match := geo.Nearest(s.registry, *payload.Latitude, *payload.Longitude)
	if match == nil {
		return fail(c, http.StatusOK, "no local sources available")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "source": match})
}

// listLocations returns every location-tagged source descriptor.
func (s *Server) listLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"sources": s.registry.WithLocation(),
	})
}

// clientSession resolves the caller's session from the cookie, issuing a
// fresh cookie when none (or an expired one) is presented.
func (s *Server) clientSession(c echo.Context) *session.Session {
	var id string
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		id = cookie.Value
	}

	sess := s.sessions.Get(id)
	if sess.ID != id {
		c.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *Server) errorLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

func (s *Server) categoryOf(key string) string {
	for category, keys := range s.categories {
		for _, k := range keys {
			if k == key {
				return category
			}
		}
	}
	return "local"
}
