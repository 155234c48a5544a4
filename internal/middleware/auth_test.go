package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	"storefront/internal/identity"
	"storefront/internal/usecase"
)

type stubVerifier struct {
	id  identity.Identity
	err error
}

func (s stubVerifier) Verify(context.Context, string) (identity.Identity, error) {
	return s.id, s.err
}

type stubResolver struct {
	caller access.Caller
	err    error
}

func (s stubResolver) ResolveCaller(context.Context, identity.Identity) (access.Caller, error) {
	return s.caller, s.err
}

func serve(t *testing.T, header string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec, c
}

func TestVerifyIdentity_NoHeader(t *testing.T) {
	rec, _ := serve(t, "", VerifyIdentity(stubVerifier{}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized: No token provided"}`, rec.Body.String())
}

func TestVerifyIdentity_BadScheme(t *testing.T) {
	rec, _ := serve(t, "Basic abc", VerifyIdentity(stubVerifier{}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyIdentity_InvalidToken(t *testing.T) {
	rec, _ := serve(t, "Bearer bad", VerifyIdentity(stubVerifier{err: identity.ErrInvalidToken}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized: Invalid token"}`, rec.Body.String())
}

func TestVerifyIdentity_LoadCaller_Success(t *testing.T) {
	want := access.Caller{ID: "u1", Email: "a@test.com", Role: model.RoleClient}
	rec, c := serve(t, "Bearer good",
		VerifyIdentity(stubVerifier{id: identity.Identity{UID: "uid-1"}}),
		LoadCaller(stubResolver{caller: want}),
	)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, want, CallerFrom(c))
	id, ok := IdentityFrom(c)
	require.True(t, ok)
	assert.Equal(t, "uid-1", id.UID)
}

func TestLoadCaller_UnknownUser(t *testing.T) {
	rec, _ := serve(t, "Bearer good",
		VerifyIdentity(stubVerifier{id: identity.Identity{UID: "uid-1"}}),
		LoadCaller(stubResolver{err: usecase.NewHTTPError(http.StatusNotFound, "User not found")}),
	)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadCaller_InternalErrorHidden(t *testing.T) {
	rec, _ := serve(t, "Bearer good",
		VerifyIdentity(stubVerifier{id: identity.Identity{UID: "uid-1"}}),
		LoadCaller(stubResolver{err: errors.New("db down")}),
	)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, rec.Body.String())
}

func TestAdminRoleGuard(t *testing.T) {
	clientCaller := access.Caller{ID: "u1", Role: model.RoleClient}
	adminCaller := access.Caller{ID: "u2", Role: model.RoleAdmin}

	rec, _ := serve(t, "Bearer x",
		VerifyIdentity(stubVerifier{id: identity.Identity{UID: "a"}}),
		LoadCaller(stubResolver{caller: clientCaller}),
		AdminRoleGuard(),
	)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, rec.Body.String())

	rec, _ = serve(t, "Bearer x",
		VerifyIdentity(stubVerifier{id: identity.Identity{UID: "b"}}),
		LoadCaller(stubResolver{caller: adminCaller}),
		AdminRoleGuard(),
	)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = serve(t, "", AdminRoleGuard())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecover(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Recover()(func(echo.Context) error { panic("boom") })
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
