package infer

import (
	"regexp"
	"strconv"
	"strings"
)

// SegmentPredicate reports whether a path segment looks like an
// identifier rather than a fixed route literal.
type SegmentPredicate func(segment string) bool

var (
	uuidRe   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	hex24Re  = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	tokenRe  = regexp.MustCompile(`^[A-Za-z0-9_-]{16,}$`)
)

// DefaultPredicates returns the built-in identifier heuristics: UUIDs,
// 24-character hex ids (Mongo ObjectIDs), all-digit ids, and long
// opaque tokens (>= 16 chars of letters, digits, hyphen, underscore).
func DefaultPredicates() []SegmentPredicate {
	return []SegmentPredicate{
		uuidRe.MatchString,
		hex24Re.MatchString,
		digitsRe.MatchString,
		tokenRe.MatchString,
	}
}

// Classifier turns literal URL paths into route templates. The predicate
// set is injectable so tests can exercise edge cases; the zero-argument
// constructor uses DefaultPredicates.
type Classifier struct {
	predicates []SegmentPredicate
}

func NewClassifier(predicates ...SegmentPredicate) *Classifier {
	if len(predicates) == 0 {
		predicates = DefaultPredicates()
	}
	return &Classifier{predicates: predicates}
}

// IsIdentifier reports whether any predicate classifies the segment as
// identifier-shaped. Placeholder tokens never match: every predicate
// requires a bracket-free segment.
func (c *Classifier) IsIdentifier(segment string) bool {
	for _, p := range c.predicates {
		if p(segment) {
			return true
		}
	}
	return false
}

// Normalize converts a URL path into its route template. Identifier
// segments become positional placeholders: the first is {id}, later ones
// {id2}, {id3}, ... in order of appearance. Empty segments are dropped.
// A path with no identifier segments normalizes to itself, so literal
// routes dedupe exactly, and normalizing a template is a no-op.
func (c *Classifier) Normalize(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return "/"
	}
	n := 0
	out := make([]string, len(segments))
	for i, seg := range segments {
		if c.IsIdentifier(seg) {
			n++
			out[i] = "{" + placeholderName(n) + "}"
			continue
		}
		out[i] = seg
	}
	return "/" + strings.Join(out, "/")
}

func placeholderName(ordinal int) string {
	if ordinal <= 1 {
		return "id"
	}
	return "id" + strconv.Itoa(ordinal)
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
