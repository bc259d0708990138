package infer

import (
	"strings"
	"testing"
)

func TestNormalize_LiteralPathsUnchanged(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	paths := []string{
		"/api/users",
		"/api/orders/pending",
		"/health",
		"/api/v2/search",
	}
	for _, p := range paths {
		if got := c.Normalize(p); got != p {
			t.Errorf("Normalize(%q) = %q, want unchanged", p, got)
		}
	}
}

func TestNormalize_IdentifierSegments(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	cases := []struct {
		name string
		path string
		want string
	}{
		{"uuid", "/api/users/2f1b6a1e-9c1d-4a7b-8c2d-0f3e4d5c6b7a", "/api/users/{id}"},
		{"hex24", "/api/users/507f1f77bcf86cd799439011", "/api/users/{id}"},
		{"digits", "/api/orders/42", "/api/orders/{id}"},
		{"long token", "/api/sessions/tok_4bGdT2xQ81mZpLr0", "/api/sessions/{id}"},
		{"two ids", "/api/users/42/orders/99", "/api/users/{id}/orders/{id2}"},
		{"three ids", "/a/1/b/2/c/3", "/a/{id}/b/{id2}/c/{id3}"},
		{"trailing slash", "/api/users/42/", "/api/users/{id}"},
		{"empty segments", "/api//users///42", "/api/users/{id}"},
		{"root", "/", "/"},
		{"empty", "", "/"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Normalize(tc.path); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	templates := []string{
		"/api/users/{id}",
		"/api/users/{id}/orders/{id2}",
		"/api/orders",
	}
	for _, tmpl := range templates {
		if got := c.Normalize(tmpl); got != tmpl {
			t.Errorf("Normalize(%q) = %q, want fixpoint", tmpl, got)
		}
	}
}

func TestNormalize_PlaceholderCount(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	got := c.Normalize("/x/11/y/22/z/33/44")
	if n := strings.Count(got, "{"); n != 4 {
		t.Fatalf("placeholder count: got %d in %q, want 4", n, got)
	}
	want := "/x/{id}/y/{id2}/z/{id3}/{id4}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewClassifier_InjectablePredicates(t *testing.T) {
	t.Parallel()
	// Only the all-digits heuristic: a 16-char alphanumeric literal
	// must pass through untouched.
	c := NewClassifier(digitsRe.MatchString)
	got := c.Normalize("/api/things/abcdefgh12345678")
	if got != "/api/things/abcdefgh12345678" {
		t.Errorf("custom predicates: got %q", got)
	}
	if got := c.Normalize("/api/things/123"); got != "/api/things/{id}" {
		t.Errorf("digits predicate: got %q", got)
	}
}

func TestIsIdentifier(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	cases := []struct {
		seg  string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"2f1b6a1e-9c1d-4a7b-8c2d-0f3e4d5c6b7a", true},
		{"12345", true},
		{"abcdefgh12345678", true}, // generic heuristic, length >= 16
		{"users", false},
		{"pending", false},
		{"{id}", false}, // placeholders never re-match
		{"v2", false},
	}
	for _, tc := range cases {
		if got := c.IsIdentifier(tc.seg); got != tc.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tc.seg, got, tc.want)
		}
	}
}
