// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access implements route-based authorization.

A [Policy] is an ordered table of [Rule] values evaluated top to bottom; the
first rule whose method set and path pattern both match decides the
[Requirement]. A policy always ends in an explicit fallback requirement, so a
request that matches nothing is never silently allowed.

Patterns use ant-style syntax:

  - "/books/**" matches "/books" itself and every path below it.
  - "*" matches a single path segment, "**" any number of segments.
  - Anything else is a literal path.
*/
package access

import (
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/taibuivan/bookreview/internal/platform/sec"
)

// # Requirements

// Kind classifies what a matched route demands from the caller.
type Kind int

const (
	// KindPublic admits every request, authenticated or not.
	KindPublic Kind = iota
	// KindAuthenticated admits any bound principal.
	KindAuthenticated
	// KindRole admits principals carrying a specific role.
	KindRole
	// KindDeny rejects every request.
	KindDeny
)

// Requirement is the outcome of evaluating a policy for one request.
type Requirement struct {
	Kind Kind
	Role sec.Role
}

var (
	// Public admits anonymous and authenticated callers alike.
	Public = Requirement{Kind: KindPublic}

	// Authenticated admits any caller with a bound principal.
	Authenticated = Requirement{Kind: KindAuthenticated}

	// Deny rejects every caller.
	Deny = Requirement{Kind: KindDeny}
)

// RequiresRole admits callers whose principal carries role.
func RequiresRole(role sec.Role) Requirement {
	return Requirement{Kind: KindRole, Role: role}
}

// String renders the requirement for logs.
func (r Requirement) String() string {
	switch r.Kind {
	case KindPublic:
		return "public"
	case KindAuthenticated:
		return "authenticated"
	case KindRole:
		return "role:" + string(r.Role)
	default:
		return "deny"
	}
}

// Decision is the result of checking a principal against a requirement.
type Decision int

const (
	// Allow lets the request reach its handler.
	Allow Decision = iota
	// Unauthenticated rejects an anonymous caller that must identify itself.
	Unauthenticated
	// Forbidden rejects a caller regardless of further credentials.
	Forbidden
)

// Check decides whether principal (nil when anonymous) satisfies the requirement.
func (r Requirement) Check(principal *sec.Principal) Decision {
	switch r.Kind {
	case KindPublic:
		return Allow

	case KindAuthenticated:
		if principal == nil {
			return Unauthenticated
		}
		return Allow

	case KindRole:
		if principal == nil {
			return Unauthenticated
		}
		if !principal.HasRole(r.Role) {
			return Forbidden
		}
		return Allow

	default:
		return Forbidden
	}
}

// # Rules

// Rule binds a set of path patterns, optionally restricted to some HTTP
// methods, to a requirement.
type Rule struct {
	Patterns    []string
	Methods     []string
	Requirement Requirement
}

// matches reports whether the rule applies to method and path.
func (rule Rule) matches(method, path string) bool {
	if len(rule.Methods) > 0 && !slices.Contains(rule.Methods, method) {
		return false
	}

	for _, pattern := range rule.Patterns {
		if MatchPattern(pattern, path) {
			return true
		}
	}
	return false
}

// MatchPattern reports whether path matches an ant-style pattern.
func MatchPattern(pattern, path string) bool {

	// "/prefix/**" also covers the bare prefix
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && !strings.ContainsAny(prefix, "*?[{") {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	matched, err := doublestar.Match(pattern, path)
	return err == nil && matched
}

// # Policies

// Policy is an ordered first-match rule table with an explicit fallback.
type Policy struct {
	name     string
	rules    []Rule
	fallback Requirement
}

// NewPolicy validates every pattern and builds a policy.
func NewPolicy(name string, fallback Requirement, rules ...Rule) (*Policy, error) {
	for index, rule := range rules {
		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("access: policy %q rule %d has no patterns", name, index)
		}
		for _, pattern := range rule.Patterns {
			if !strings.HasPrefix(pattern, "/") || !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("access: policy %q rule %d has invalid pattern %q", name, index, pattern)
			}
		}
		for _, method := range rule.Methods {
			if method != strings.ToUpper(method) {
				return nil, fmt.Errorf("access: policy %q rule %d has non-canonical method %q", name, index, method)
			}
		}
	}

	return &Policy{name: name, rules: slices.Clone(rules), fallback: fallback}, nil
}

// MustPolicy is like [NewPolicy] but panics on an invalid table.
// It is meant for the static tables compiled into the binary.
func MustPolicy(name string, fallback Requirement, rules ...Rule) *Policy {
	policy, err := NewPolicy(name, fallback, rules...)
	if err != nil {
		panic(err)
	}
	return policy
}

// Name identifies the policy in logs.
func (p *Policy) Name() string {
	return p.name
}

// Evaluate returns the requirement of the first rule matching the request,
// or the fallback when none does.
func (p *Policy) Evaluate(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule.Requirement
		}
	}
	return p.fallback
}

// EvaluateRequest is [Policy.Evaluate] applied to an HTTP request, using the
// canonical form of its path.
func (p *Policy) EvaluateRequest(request *http.Request) Requirement {
	return p.Evaluate(request.Method, CanonicalPath(request.URL.Path))
}

// CanonicalPath resolves "." and ".." segments and collapses repeated
// slashes. A trailing slash is kept; an empty path becomes "/".
func CanonicalPath(raw string) string {
	if raw == "" {
		return "/"
	}
	if raw[0] != '/' {
		raw = "/" + raw
	}

	cleaned := path.Clean(raw)
	if strings.HasSuffix(raw, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}
