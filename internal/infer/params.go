package infer

import (
	"net/url"
	"strings"

	"github.com/apitrace/har2openapi/internal/har"
)

// Param describes one inferred path or query parameter. Parameters are
// always typed as plain strings: values observed in a URL carry no
// reliable numeric or boolean shape.
type Param struct {
	Name     string
	In       string // "path" or "query"
	Required bool
	Example  string
}

// PathParams walks the route template and the literal path in lock-step
// and emits one required path parameter per placeholder, using the
// literal segment at the same position as its example.
func PathParams(template, literalPath string) []Param {
	tmplSegs := splitPath(template)
	pathSegs := splitPath(literalPath)

	var params []Param
	for i, seg := range tmplSegs {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		p := Param{
			Name:     strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}"),
			In:       "path",
			Required: true,
		}
		if i < len(pathSegs) {
			p.Example = pathSegs[i]
		}
		params = append(params, p)
	}
	return params
}

// QueryParams enumerates the URL's query pairs in order of appearance,
// then folds in the capture's recorded queryString list. URL-derived
// values take precedence; within each source the first-seen example for
// a name is kept. Query parameters are never required.
func QueryParams(u *url.URL, recorded []har.NameValue) []Param {
	var params []Param
	seen := make(map[string]struct{})

	add := func(name, value string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		params = append(params, Param{Name: name, In: "query", Example: value})
	}

	if u != nil && u.RawQuery != "" {
		// Walk the raw query by hand: url.Values would lose the order
		// pairs appeared in.
		for _, pair := range strings.Split(u.RawQuery, "&") {
			if pair == "" {
				continue
			}
			name, value, _ := strings.Cut(pair, "=")
			if decoded, err := url.QueryUnescape(name); err == nil {
				name = decoded
			}
			if decoded, err := url.QueryUnescape(value); err == nil {
				value = decoded
			}
			add(name, value)
		}
	}

	for _, nv := range recorded {
		add(nv.Name, nv.Value)
	}
	return params
}
