// Package gateway serves the dashboard's /api surface on top of the
// backend's /db/{collection} router. It maps paths and unwraps list
// envelopes; documents pass through untouched.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smartdir/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resource is one /api path segment and the backend collection behind it.
type Resource struct {
	Name       string `json:"name"`
	Collection string `json:"collection"`
	Writable   bool   `json:"writable"`
	Clearable  bool   `json:"clearable"`
}

// Resources is the routing table, in tab order.
var Resources = []Resource{
	{Name: "socios", Collection: "partners", Writable: true},
	{Name: "recomendaciones", Collection: "referrals"},
	{Name: "conversaciones", Collection: "ongoing_conversations"},
	{Name: "logs", Collection: "debugging-logs", Clearable: true},
}

// Lookup finds the resource registered under name.
func Lookup(name string) (Resource, bool) {
	for _, r := range Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

const requestIDHeader = "X-Request-ID"

// Gateway proxies /api requests to the backend.
type Gateway struct {
	backend string
	http    *http.Client
	logger  *zap.Logger
	engine  *gin.Engine
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) { g.http = hc }
}

// WithTimeout bounds each upstream call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.http.Timeout = d }
}

// WithLogger attaches a logger; requests are logged under the gateway category.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) { g.logger = logging.For(l, logging.CategoryGateway) }
}

// New builds a gateway that forwards to backendURL.
func New(backendURL string, opts ...Option) *Gateway {
	g := &Gateway{
		backend: strings.TrimRight(backendURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.engine = g.routes()
	return g
}

// Handler exposes the router, mainly for tests.
func (g *Gateway) Handler() http.Handler { return g.engine }

// Run serves on addr until ctx is cancelled, then drains for up to five
// seconds.
func (g *Gateway) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           g.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("gateway listening", zap.String("addr", addr), zap.String("backend", g.backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("gateway: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("gateway shutdown: %w", err)
	}
	g.logger.Info("gateway stopped")
	return nil
}

func (g *Gateway) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), g.accessLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", requestIDHeader},
	}))

	api := r.Group("/api")
	api.GET("", g.listResources)
	api.GET("/:resource", g.withResource(g.list))
	api.DELETE("/:resource", g.withResource(g.clear))
	api.POST("/:resource", g.withResource(g.create))
	api.GET("/:resource/:id", g.withResource(g.get))
	api.PUT("/:resource/:id", g.withResource(g.update))
	api.DELETE("/:resource/:id", g.withResource(g.remove))
	return r
}

// accessLog logs one line per request and tags it with a request id.
func (g *Gateway) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Header(requestIDHeader, reqID)

		c.Next()

		g.logger.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

type resourceHandler func(c *gin.Context, res Resource)

func (g *Gateway) withResource(h resourceHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := Lookup(c.Param("resource"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("resource %q not found", c.Param("resource"))})
			return
		}
		h(c, res)
	}
}

// GET /api
func (g *Gateway) listResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": Resources})
}

// envelope is the backend's list response.
type envelope struct {
	Collection string          `json:"collection"`
	Total      int             `json:"total"`
	Returned   int             `json:"returned"`
	Data       json.RawMessage `json:"data"`
}

// GET /api/:resource
func (g *Gateway) list(c *gin.Context, res Resource) {
	status, body, err := g.forward(c, http.MethodGet, "/db/"+res.Collection, c.Request.URL.RawQuery, nil)
	if err != nil {
		g.badGateway(c, err)
		return
	}
	if status < 200 || status > 299 {
		c.Data(status, "application/json", body)
		return
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		g.badGateway(c, fmt.Errorf("decode %s envelope: %w", res.Collection, err))
		return
	}
	data := env.Data
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("[]")
	}
	c.Header("X-Total-Count", fmt.Sprint(env.Total))
	c.Data(http.StatusOK, "application/json", data)
}

// GET /api/:resource/:id
func (g *Gateway) get(c *gin.Context, res Resource) {
	g.passthrough(c, http.MethodGet, g.docPath(res, c.Param("id")), nil)
}

// DELETE /api/:resource/:id
func (g *Gateway) remove(c *gin.Context, res Resource) {
	g.passthrough(c, http.MethodDelete, g.docPath(res, c.Param("id")), nil)
}

// DELETE /api/:resource
func (g *Gateway) clear(c *gin.Context, res Resource) {
	if !res.Clearable {
		c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("resource %q cannot be cleared", res.Name)})
		return
	}
	g.passthrough(c, http.MethodDelete, "/db/"+res.Collection, nil)
}

// POST /api/:resource
func (g *Gateway) create(c *gin.Context, res Resource) {
	body, ok := g.writableBody(c, res)
	if !ok {
		return
	}
	g.passthrough(c, http.MethodPost, "/db/"+res.Collection, body)
}

// PUT /api/:resource/:id
func (g *Gateway) update(c *gin.Context, res Resource) {
	body, ok := g.writableBody(c, res)
	if !ok {
		return
	}
	g.passthrough(c, http.MethodPut, g.docPath(res, c.Param("id")), body)
}

func (g *Gateway) writableBody(c *gin.Context, res Resource) ([]byte, bool) {
	if !res.Writable {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": fmt.Sprintf("resource %q is read-only", res.Name)})
		return nil, false
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return nil, false
	}
	return body, true
}

func (g *Gateway) docPath(res Resource, id string) string {
	return "/db/" + res.Collection + "/" + url.PathEscape(id)
}

func (g *Gateway) passthrough(c *gin.Context, method, path string, body []byte) {
	status, out, err := g.forward(c, method, path, "", body)
	if err != nil {
		g.badGateway(c, err)
		return
	}
	c.Data(status, "application/json", out)
}

// forward performs one upstream call and returns its status and body.
func (g *Gateway) forward(c *gin.Context, method, path, rawQuery string, body []byte) (int, []byte, error) {
	target := g.backend + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(c.Request.Context(), method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, c.GetString("request_id"))

	resp, err := g.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	return resp.StatusCode, out, nil
}

func (g *Gateway) badGateway(c *gin.Context, err error) {
	g.logger.Warn("upstream failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
