package infer

import (
	"reflect"
	"testing"
)

func TestInferSchema_PrimitiveObject(t *testing.T) {
	t.Parallel()
	example := map[string]any{"a": float64(1), "b": "x", "c": true, "d": nil}
	ref := InferSchema(example, "Sample")
	s := ref.Value
	if s.Type != "object" {
		t.Fatalf("type: %q", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties: %d", len(s.Properties))
	}
	wantTypes := map[string]string{"a": "integer", "b": "string", "c": "boolean", "d": ""}
	for name, wantType := range wantTypes {
		prop := s.Properties[name]
		if prop == nil || prop.Value == nil {
			t.Fatalf("missing property %q", name)
		}
		if prop.Value.Type != wantType {
			t.Errorf("property %q type: got %q, want %q", name, prop.Value.Type, wantType)
		}
	}
	if !s.Properties["d"].Value.Nullable {
		t.Error("null example must infer a nullable marker")
	}
	wantReq := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(s.Required, wantReq) {
		t.Errorf("required: got %v, want %v", s.Required, wantReq)
	}
}

func TestInferSchema_Numbers(t *testing.T) {
	t.Parallel()
	if got := InferSchema(float64(3), "").Value.Type; got != "integer" {
		t.Errorf("whole float: %q", got)
	}
	if got := InferSchema(float64(3.5), "").Value.Type; got != "number" {
		t.Errorf("fractional: %q", got)
	}
	if got := InferSchema(7, "").Value.Type; got != "integer" {
		t.Errorf("int: %q", got)
	}
}

func TestInferSchema_Arrays(t *testing.T) {
	t.Parallel()
	ref := InferSchema([]any{map[string]any{"n": float64(1)}, "ignored"}, "List")
	s := ref.Value
	if s.Type != "array" {
		t.Fatalf("type: %q", s.Type)
	}
	// Item schema comes from the first element only.
	item := s.Items.Value
	if item.Type != "object" || item.Properties["n"].Value.Type != "integer" {
		t.Errorf("item schema: %+v", item)
	}

	empty := InferSchema([]any{}, "List").Value
	if empty.Items.Value.Type != "string" {
		t.Errorf("empty array default item: %q", empty.Items.Value.Type)
	}
}

func TestInferSchema_NestedObjectsInlined(t *testing.T) {
	t.Parallel()
	example := map[string]any{
		"owner": map[string]any{"name": "jo"},
	}
	ref := InferSchema(example, "Pet")
	owner := ref.Value.Properties["owner"]
	if owner.Ref != "" {
		t.Errorf("nested object must be inlined, got ref %q", owner.Ref)
	}
	if owner.Value.Properties["name"].Value.Type != "string" {
		t.Errorf("nested property: %+v", owner.Value)
	}
	if !reflect.DeepEqual(owner.Value.Required, []string{"name"}) {
		t.Errorf("nested required: %v", owner.Value.Required)
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"users", "Users"},
		{"user-accounts", "UserAccounts"},
		{"v2", "V2"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
