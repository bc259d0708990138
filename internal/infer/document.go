package infer

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// AssembleOptions carries the document header metadata.
type AssembleOptions struct {
	Title     string
	Version   string
	ServerURL string
}

// assembler owns the component registry for one document build, so
// independent conversion runs never share naming state.
type assembler struct {
	components openapi3.Schemas
}

// Assemble walks the finalized endpoints and emits the OpenAPI document:
// sorted tags, one operation per (template, method), parameters,
// representative request/response bodies with registered schema
// components, and literal examples kept verbatim next to each schema.
func Assemble(endpoints []*Endpoint, opts AssembleOptions) *openapi3.T {
	a := &assembler{components: make(openapi3.Schemas)}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   opts.Title,
			Version: opts.Version,
		},
		Paths:      make(openapi3.Paths),
		Components: &openapi3.Components{Schemas: a.components},
	}
	if opts.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: opts.ServerURL}}
	}

	doc.Tags = collectTags(endpoints)

	for _, ep := range endpoints {
		op := a.buildOperation(ep)
		item := doc.Paths[ep.Template]
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths[ep.Template] = item
		}
		item.SetOperation(ep.Method, op)
	}

	return doc
}

func (a *assembler) buildOperation(ep *Endpoint) *openapi3.Operation {
	op := &openapi3.Operation{
		Tags:        []string{ep.Tag},
		Summary:     ep.Method + " " + ep.Template,
		OperationID: OperationID(ep.Method, ep.Template),
		Responses:   make(openapi3.Responses),
	}

	for _, p := range ep.Params {
		param := &openapi3.Parameter{
			Name:     p.Name,
			In:       p.In,
			Required: p.Required,
			Schema:   openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		}
		if p.Example != "" {
			param.Example = p.Example
		}
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
	}

	if rep := representative(ep.Requests); rep != nil {
		name := sanitizeName(ep.Tag) + capitalize(strings.ToLower(ep.Method)) + "Request"
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Content: openapi3.Content{
					rep.MediaType: a.mediaType(rep, name),
				},
			},
		}
	}

	if rep := representative(ep.Responses); rep != nil {
		status := rep.Status
		if status == 0 {
			status = ep.FirstStatus
		}
		if status < 100 {
			status = 200
		}
		desc := http.StatusText(status)
		if desc == "" {
			desc = "Observed response"
		}
		name := sanitizeName(ep.Tag) + "Response"
		op.Responses[strconv.Itoa(status)] = &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &desc,
				Content: openapi3.Content{
					rep.MediaType: a.mediaType(rep, name),
				},
			},
		}
	} else {
		desc := "Successful response"
		op.Responses["200"] = &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: &desc},
		}
	}

	return op
}

// mediaType builds the content entry for a representative example. The
// raw captured value is always carried verbatim as the example; object
// examples additionally get an inferred schema registered under name
// and referenced from here.
func (a *assembler) mediaType(body *Body, name string) *openapi3.MediaType {
	mt := &openapi3.MediaType{Example: body.Value}
	if _, ok := body.Value.(map[string]any); ok {
		registered := a.register(name, InferSchema(body.Value, name))
		// Carry the resolved value alongside the ref so the document
		// validates without a resolution pass.
		mt.Schema = openapi3.NewSchemaRef("#/components/schemas/"+name, registered.Value)
	}
	return mt
}

// register adds a named component and returns the schema that owns the
// name. First registration wins: a later schema under the same name
// never overwrites an earlier one, so same-tag endpoints deliberately
// share one response component.
func (a *assembler) register(name string, schema *openapi3.SchemaRef) *openapi3.SchemaRef {
	if existing, ok := a.components[name]; ok {
		return existing
	}
	a.components[name] = schema
	return schema
}

// representative picks the example used for schema inference and
// display: the first structured (JSON) entry when one exists, else the
// first entry overall. Arrival order makes the first structured entry
// also the earliest-seen status among structured candidates.
func representative(bodies []Body) *Body {
	for i := range bodies {
		if bodies[i].Structured() {
			return &bodies[i]
		}
	}
	if len(bodies) > 0 {
		return &bodies[0]
	}
	return nil
}

// OperationID derives the stable operation identifier for a (method,
// template) pair: lower-cased method joined with the template stripped
// of placeholder markup and leading slash, every non-alphanumeric run
// collapsed to underscores.
func OperationID(method, template string) string {
	p := strings.NewReplacer("{", "", "}", "").Replace(template)
	p = strings.TrimPrefix(p, "/")
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	if p != "" {
		b.WriteByte('_')
	}
	lastUnderscore := true
	for _, r := range p {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func collectTags(endpoints []*Endpoint) openapi3.Tags {
	seen := make(map[string]struct{})
	var names []string
	for _, ep := range endpoints {
		if _, ok := seen[ep.Tag]; ok {
			continue
		}
		seen[ep.Tag] = struct{}{}
		names = append(names, ep.Tag)
	}
	sort.Strings(names)
	tags := make(openapi3.Tags, 0, len(names))
	for _, n := range names {
		tags = append(tags, &openapi3.Tag{Name: n})
	}
	return tags
}
