// Package gateway forwards /api/* requests to the service that owns the
// resource and checks the admin role before admin-only calls.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"storefront/internal/domain/model"
)

type Config struct {
	AccountServiceURL string
	ProductServiceURL string
	Timeout           time.Duration
	// TracerProvider is optional.
	TracerProvider trace.TracerProvider
}

type route struct {
	prefix   string
	upstream *url.URL
}

type Gateway struct {
	client  *http.Client
	account *url.URL
	routes  []route
}

type errorResponse struct {
	Message string `json:"message"`
}

func New(cfg Config) (*Gateway, error) {
	account, err := parseUpstream(cfg.AccountServiceURL)
	if err != nil {
		return nil, errors.Wrap(err, "account service url")
	}
	product, err := parseUpstream(cfg.ProductServiceURL)
	if err != nil {
		return nil, errors.Wrap(err, "product service url")
	}

	var opts []otelhttp.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}

	return &Gateway{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
		},
		account: account,
		// 長いprefixを先に
		routes: []route{
			{prefix: "/api/admin/orders", upstream: account},
			{prefix: "/api/admin/payments", upstream: account},
			{prefix: "/api/admin/audit-logs", upstream: account},
			{prefix: "/api/admin/coupons", upstream: product},
			{prefix: "/api/auth", upstream: account},
			{prefix: "/api/users", upstream: account},
			{prefix: "/api/cart", upstream: account},
			{prefix: "/api/orders", upstream: account},
			{prefix: "/api/payments", upstream: account},
			{prefix: "/api/products", upstream: product},
			{prefix: "/api/categories", upstream: product},
			{prefix: "/api/coupons", upstream: product},
		},
	}, nil
}

func parseUpstream(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid upstream %q", raw)
	}
	return u, nil
}

func (g *Gateway) RegisterRoutes(e *echo.Echo) {
	e.Any("/api/*", g.proxy, g.AdminPrecheck)
}

func (g *Gateway) match(path string) (route, bool) {
	for _, r := range g.routes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return r, true
		}
	}
	return route{}, false
}

// requiresAdmin: /api/admin/* と、カタログの更新系（クーポン適用を除く）
func requiresAdmin(method, path string) bool {
	if strings.HasPrefix(path, "/api/admin/") {
		return true
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	if path == "/api/coupons/apply" {
		return false
	}
	for _, p := range []string{"/api/products", "/api/categories", "/api/coupons"} {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// AdminPrecheck asks the account service for the caller's role.
func (g *Gateway) AdminPrecheck(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if !requiresAdmin(req.Method, req.URL.Path) {
			return next(c)
		}

		authz := req.Header.Get(echo.HeaderAuthorization)
		if authz == "" {
			return c.JSON(http.StatusUnauthorized, errorResponse{Message: "No authorization header"})
		}

		role, err := g.fetchRole(req.Context(), authz)
		if err != nil {
			zctx.From(req.Context()).Warn("Admin check failed", zap.Error(err))
			return c.JSON(http.StatusForbidden, errorResponse{Message: "Access denied"})
		}
		if role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, errorResponse{Message: "Admin access required"})
		}
		return next(c)
	}
}

func (g *Gateway) fetchRole(ctx context.Context, authz string) (model.Role, error) {
	u := *g.account
	u.Path += "/api/users/me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set(echo.HeaderAuthorization, authz)

	res, err := g.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call account service")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("account service returned %d", res.StatusCode)
	}

	var me struct {
		Role model.Role `json:"role"`
	}
	if err := json.NewDecoder(res.Body).Decode(&me); err != nil {
		return "", errors.Wrap(err, "decode user")
	}
	return me.Role, nil
}

// レスポンスから外すヘッダ（Content-Lengthはechoが付け直す）
var hopByHop = map[string]bool{
	"Connection":        true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
	"Trailer":           true,
	"Content-Length":    true,
}

// 転送するリクエストヘッダ
var forwardHeaders = []string{
	echo.HeaderAuthorization,
	echo.HeaderContentType,
	echo.HeaderAccept,
	echo.HeaderXRequestID,
}

func (g *Gateway) proxy(c echo.Context) error {
	in := c.Request()
	lg := zctx.From(in.Context())

	r, ok := g.match(in.URL.Path)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Not found"})
	}

	target := *r.upstream
	target.Path += in.URL.Path
	target.RawQuery = in.URL.RawQuery

	body, err := io.ReadAll(in.Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	out, err := http.NewRequestWithContext(in.Context(), in.Method, target.String(), bytes.NewReader(body))
	if err != nil {
		lg.Error("Build upstream request", zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorResponse{Message: "Proxy error"})
	}
	for _, h := range forwardHeaders {
		if v := in.Header.Get(h); v != "" {
			out.Header.Set(h, v)
		}
	}
	// RequestID middlewareが生成したIDも渡す
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		out.Header.Set(echo.HeaderXRequestID, id)
	}

	lg.Debug("Proxying", zap.String("method", in.Method), zap.String("upstream", target.String()))

	res, err := g.client.Do(out)
	if err != nil {
		lg.Error("Upstream unreachable", zap.String("upstream", r.upstream.Host), zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorResponse{Message: "Proxy error"})
	}
	defer func() { _ = res.Body.Close() }()

	header := c.Response().Header()
	for k, vs := range res.Header {
		if hopByHop[k] {
			continue
		}
		header.Del(k)
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	ct := res.Header.Get(echo.HeaderContentType)
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Stream(res.StatusCode, ct, res.Body)
}
