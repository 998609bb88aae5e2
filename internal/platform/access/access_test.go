// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookreview/internal/platform/access"
	"github.com/taibuivan/bookreview/internal/platform/sec"
)

/*
TestMatchPattern covers the ant-style pattern forms used by the policies.
*/
func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/books/**", "/books", true},
		{"/books/**", "/books/", true},
		{"/books/**", "/books/42", true},
		{"/books/**", "/books/42/reviews", true},
		{"/books/**", "/bookshelf", false},
		{"/api/hello", "/api/hello", true},
		{"/api/hello", "/api/hello/x", false},
		{"/swagger-ui.html", "/swagger-ui.html", true},
		{"/swagger-ui.html", "/swagger-uiXhtml", false},
		{"/reviews/*/my", "/reviews/book/my", true},
		{"/reviews/*/my", "/reviews/book/1/my", false},
		{"/a/**/z", "/a/b/c/z", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, access.MatchPattern(tt.pattern, tt.path))
		})
	}
}

/*
TestNewPolicy_RejectsInvalidTables catches broken patterns at construction.
*/
func TestNewPolicy_RejectsInvalidTables(t *testing.T) {
	_, err := access.NewPolicy("bad", access.Deny, access.Rule{Requirement: access.Public})
	assert.Error(t, err)

	_, err = access.NewPolicy("bad", access.Deny, access.Rule{Patterns: []string{"books/**"}})
	assert.Error(t, err)

	_, err = access.NewPolicy("bad", access.Deny, access.Rule{Patterns: []string{"/books/[**"}})
	assert.Error(t, err)

	_, err = access.NewPolicy("bad", access.Deny, access.Rule{Patterns: []string{"/books"}, Methods: []string{"get"}})
	assert.Error(t, err)

	assert.Panics(t, func() {
		access.MustPolicy("bad", access.Deny, access.Rule{})
	})
}

/*
TestPolicy_FirstMatchWins checks ordering and the fallback requirement.
*/
func TestPolicy_FirstMatchWins(t *testing.T) {
	policy, err := access.NewPolicy("test", access.Deny,
		access.Rule{Patterns: []string{"/a/open"}, Requirement: access.Public},
		access.Rule{Patterns: []string{"/a/**"}, Requirement: access.Authenticated},
		access.Rule{Patterns: []string{"/a/open"}, Requirement: access.Deny},
	)
	require.NoError(t, err)

	assert.Equal(t, access.Public, policy.Evaluate(http.MethodGet, "/a/open"))
	assert.Equal(t, access.Authenticated, policy.Evaluate(http.MethodGet, "/a/closed"))
	assert.Equal(t, access.Deny, policy.Evaluate(http.MethodGet, "/elsewhere"))
	assert.Equal(t, "test", policy.Name())
}

/*
TestOperationalPolicy verifies the /actuator rule table.
*/
func TestOperationalPolicy(t *testing.T) {
	policy := access.OperationalPolicy()

	tests := []struct {
		path string
		want access.Requirement
	}{
		{"/actuator/health", access.Public},
		{"/actuator/health/liveness", access.Public},
		{"/actuator/health/readiness", access.Public},
		{"/actuator/info", access.Public},
		{"/actuator/metrics", access.RequiresRole(sec.RoleActuator)},
		{"/actuator/prometheus", access.RequiresRole(sec.RoleActuator)},
		{"/actuator/info/extra", access.RequiresRole(sec.RoleActuator)},
		{"/actuator", access.RequiresRole(sec.RoleActuator)},
		{"/books", access.Deny},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Evaluate(http.MethodGet, tt.path))
		})
	}
}

/*
TestApplicationPolicy verifies the application rule table, including method filters.
*/
func TestApplicationPolicy(t *testing.T) {
	policy := access.ApplicationPolicy()
	admin := access.RequiresRole(sec.RoleAdmin)

	tests := []struct {
		method string
		path   string
		want   access.Requirement
	}{
		{http.MethodPost, "/auth/login", access.Public},
		{http.MethodPost, "/auth/signup", access.Public},
		{http.MethodGet, "/api/hello", access.Public},
		{http.MethodGet, "/v3/api-docs", access.Public},
		{http.MethodGet, "/v3/api-docs/swagger-config", access.Public},
		{http.MethodGet, "/swagger-ui/index.html", access.Public},
		{http.MethodGet, "/swagger-ui.html", access.Public},
		{http.MethodGet, "/books", access.Public},
		{http.MethodGet, "/books/42", access.Public},
		{http.MethodGet, "/reviews/book/42", access.Public},
		{http.MethodPost, "/reviews/book/42", access.Authenticated},
		{http.MethodDelete, "/reviews/7", access.Authenticated},
		{http.MethodGet, "/reviews/my", access.Authenticated},
		{http.MethodGet, "/recommendations/top-rated", access.Public},
		{http.MethodPost, "/recommendations/top-rated", access.Authenticated},
		{http.MethodGet, "/recommendations/ai", access.Authenticated},
		{http.MethodGet, "/favourites/my", access.Authenticated},
		{http.MethodPut, "/favourites/book/3/toggle", access.Authenticated},
		{http.MethodPost, "/admin/books/import", admin},
		{http.MethodGet, "/admin", admin},
		{http.MethodGet, "/anything/else", access.Authenticated},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Evaluate(tt.method, tt.path))
		})
	}
}

/*
TestRequirement_Check maps principals onto decisions.
*/
func TestRequirement_Check(t *testing.T) {
	user := sec.NewPrincipal(1, "user@example.com", sec.RoleUser)
	admin := sec.NewPrincipal(2, "admin@example.com", sec.RoleUser, sec.RoleAdmin)

	tests := []struct {
		name        string
		requirement access.Requirement
		principal   *sec.Principal
		want        access.Decision
	}{
		{"public_anonymous", access.Public, nil, access.Allow},
		{"public_user", access.Public, user, access.Allow},
		{"authenticated_anonymous", access.Authenticated, nil, access.Unauthenticated},
		{"authenticated_user", access.Authenticated, user, access.Allow},
		{"role_anonymous", access.RequiresRole(sec.RoleAdmin), nil, access.Unauthenticated},
		{"role_missing", access.RequiresRole(sec.RoleAdmin), user, access.Forbidden},
		{"role_present", access.RequiresRole(sec.RoleAdmin), admin, access.Allow},
		{"admin_is_not_actuator", access.RequiresRole(sec.RoleActuator), admin, access.Forbidden},
		{"deny_anonymous", access.Deny, nil, access.Forbidden},
		{"deny_admin", access.Deny, admin, access.Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.requirement.Check(tt.principal))
		})
	}
}

/*
TestCanonicalPath resolves dot segments and doubled slashes the way the
router will see them.
*/
func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/books", "/books"},
		{"/books/", "/books/"},
		{"books/42", "/books/42"},
		{"//admin/books/import", "/admin/books/import"},
		{"/books/../admin/books/import", "/admin/books/import"},
		{"/actuator/health/../metrics", "/actuator/metrics"},
		{"/books/./42", "/books/42"},
		{"/../..", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, access.CanonicalPath(tt.raw))
		})
	}
}

/*
TestPolicy_EvaluateRequestUsesCanonicalPath stops a public prefix from
covering a path that resolves into a protected one.
*/
func TestPolicy_EvaluateRequestUsesCanonicalPath(t *testing.T) {
	admin := access.RequiresRole(sec.RoleAdmin)
	application := access.ApplicationPolicy()

	request := httptest.NewRequest(http.MethodPost, "/books/../admin/books/import", nil)
	require.Equal(t, "/books/../admin/books/import", request.URL.Path)
	assert.Equal(t, admin, application.EvaluateRequest(request))

	request = httptest.NewRequest(http.MethodPost, "//admin/books/import", nil)
	assert.Equal(t, admin, application.EvaluateRequest(request))

	operational := access.OperationalPolicy()
	request = httptest.NewRequest(http.MethodGet, "/actuator/health/../metrics", nil)
	assert.Equal(t, operational.Evaluate(http.MethodGet, "/actuator/metrics"), operational.EvaluateRequest(request))
	assert.NotEqual(t, access.Public, operational.EvaluateRequest(request))
}
