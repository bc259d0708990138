package infer

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
)

// InferSchema derives a structural schema from a single example value.
// nameHint seeds the hints of nested object members (hint + capitalized
// key); nested objects stay inlined in the parent schema, never
// registered on their own.
//
// Single-sample inference is a documented limitation: every observed
// object key is marked required because one example cannot show which
// keys are universal.
func InferSchema(value any, nameHint string) *openapi3.SchemaRef {
	switch v := value.(type) {
	case nil:
		return openapi3.NewSchemaRef("", &openapi3.Schema{Nullable: true})
	case bool:
		return openapi3.NewSchemaRef("", openapi3.NewBoolSchema())
	case string:
		return openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return openapi3.NewSchemaRef("", openapi3.NewIntegerSchema())
		}
		return openapi3.NewSchemaRef("", openapi3.NewFloat64Schema())
	case int:
		return openapi3.NewSchemaRef("", openapi3.NewIntegerSchema())
	case int64:
		return openapi3.NewSchemaRef("", openapi3.NewIntegerSchema())
	case []any:
		items := openapi3.NewSchemaRef("", openapi3.NewStringSchema())
		if len(v) > 0 {
			// Arrays are described by their first element only.
			items = InferSchema(v[0], nameHint+"Item")
		}
		schema := openapi3.NewArraySchema()
		schema.Items = items
		return openapi3.NewSchemaRef("", schema)
	case map[string]any:
		schema := openapi3.NewObjectSchema()
		schema.Properties = make(openapi3.Schemas, len(v))
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			schema.Properties[k] = InferSchema(v[k], nameHint+capitalize(k))
			schema.Required = append(schema.Required, k)
		}
		return openapi3.NewSchemaRef("", schema)
	default:
		return openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// sanitizeName reduces an arbitrary string to a component-name-safe
// CamelCase fragment.
func sanitizeName(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
