package infer

import (
	"net/url"
	"path"
	"strings"

	"github.com/apitrace/har2openapi/internal/har"
)

// placeholderOrigin resolves relative capture URLs so the path and query
// components are still usable.
const placeholderOrigin = "http://captured.invalid"

// staticExtensions marks obvious asset fetches that never describe an
// API surface.
var staticExtensions = map[string]struct{}{
	".js": {}, ".mjs": {}, ".css": {}, ".map": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {},
	".ico": {}, ".woff": {}, ".woff2": {}, ".ttf": {}, ".otf": {}, ".eot": {},
}

// xhrResourceTypes are the browser classifications considered API calls.
// Entries with any other non-empty classification are out of scope.
var xhrResourceTypes = map[string]struct{}{
	"xhr": {}, "fetch": {},
}

// Endpoint is the mutable aggregate for one (method, route template)
// key. It accumulates parameters and example payloads across every
// observation of the key.
type Endpoint struct {
	Method    string // upper-case
	Template  string
	FirstPath string // literal path of the first observation
	Tag       string
	Params    []Param
	Requests  []Body
	Responses []Body
	// FirstStatus is the status of the first observed response,
	// used when no response body example survives interpretation.
	FirstStatus int
}

// Stats summarizes one collection run. Out-of-scope entries (path
// outside the prefix, static assets, non-XHR fetches) are excluded from
// the processed/skipped totals entirely.
type Stats struct {
	Processed  int
	Skipped    int
	OutOfScope int
}

// Collector deduplicates captured calls into endpoints keyed by
// (method, route template). Observation order is preserved both across
// endpoints and within each endpoint's example lists.
type Collector struct {
	prefix     string
	classifier *Classifier
	endpoints  map[string]*Endpoint
	order      []string
	stats      Stats
	serverURL  string
}

// NewCollector creates a collector that only considers entries whose
// path starts with prefix. A nil classifier falls back to the default
// identifier heuristics.
func NewCollector(prefix string, classifier *Classifier) *Collector {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Collector{
		prefix:     prefix,
		classifier: classifier,
		endpoints:  make(map[string]*Endpoint),
	}
}

// AddEntry feeds one capture entry through the boundary filter and, if
// it survives, merges it into the endpoint set. Malformed entries never
// abort the run; they only move counters.
func (c *Collector) AddEntry(e har.Entry) {
	if e.ResourceType != "" {
		if _, ok := xhrResourceTypes[e.ResourceType]; !ok {
			c.stats.OutOfScope++
			return
		}
	}

	method := strings.ToUpper(strings.TrimSpace(e.Request.Method))
	if method == "" || strings.TrimSpace(e.Request.URL) == "" {
		c.stats.Skipped++
		return
	}

	u, err := parseCaptureURL(e.Request.URL)
	if err != nil {
		c.stats.Skipped++
		return
	}

	if _, ok := staticExtensions[strings.ToLower(path.Ext(u.Path))]; ok {
		c.stats.OutOfScope++
		return
	}
	if !strings.HasPrefix(u.Path, c.prefix) {
		c.stats.OutOfScope++
		return
	}

	if c.serverURL == "" && u.Scheme != "" && u.Host != "" {
		if origin := u.Scheme + "://" + u.Host; origin != placeholderOrigin {
			c.serverURL = origin
		}
	}

	template := c.classifier.Normalize(u.Path)
	params := append(PathParams(template, u.Path), QueryParams(u, e.Request.QueryString)...)
	req := InterpretRequest(e.Request.PostData)
	resp := InterpretResponse(e.Response.Status, e.Response.Content)

	key := method + " " + template
	ep, ok := c.endpoints[key]
	if !ok {
		ep = &Endpoint{
			Method:      method,
			Template:    template,
			FirstPath:   u.Path,
			Tag:         deriveTag(template, c.prefix),
			FirstStatus: e.Response.Status,
		}
		c.endpoints[key] = ep
		c.order = append(c.order, key)
	}
	mergeObservation(ep, params, req, resp)
	c.stats.Processed++
}

// mergeObservation folds one observation into an endpoint aggregate:
// parameters union by (location, name) keeping the earliest example,
// body examples append in arrival order.
func mergeObservation(ep *Endpoint, params []Param, req, resp *Body) {
	for _, p := range params {
		if hasParam(ep.Params, p.In, p.Name) {
			continue
		}
		ep.Params = append(ep.Params, p)
	}
	if req != nil {
		ep.Requests = append(ep.Requests, *req)
	}
	if resp != nil {
		ep.Responses = append(ep.Responses, *resp)
	}
}

func hasParam(params []Param, in, name string) bool {
	for _, p := range params {
		if p.In == in && p.Name == name {
			return true
		}
	}
	return false
}

// Endpoints returns the aggregates in first-observation order.
func (c *Collector) Endpoints() []*Endpoint {
	out := make([]*Endpoint, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.endpoints[key])
	}
	return out
}

// Stats returns the run counters accumulated so far.
func (c *Collector) Stats() Stats { return c.stats }

// ServerURL returns the origin of the first in-scope entry, or "".
func (c *Collector) ServerURL() string { return c.serverURL }

func parseCaptureURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		base, _ := url.Parse(placeholderOrigin)
		u = base.ResolveReference(u)
	}
	return u, nil
}

// deriveTag picks the first non-placeholder segment of the template
// after the fixed prefix.
func deriveTag(template, prefix string) string {
	rest := strings.TrimPrefix(template, prefix)
	for _, seg := range splitPath(rest) {
		if strings.HasPrefix(seg, "{") {
			continue
		}
		return seg
	}
	return "general"
}
