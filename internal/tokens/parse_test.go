package tokens

import (
	"errors"
	"testing"
)

func TestParseEntryKinds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    Kind
		literal string
		ref     string
	}{
		{"string literal", `"#2F5233"`, KindLiteral, "#2F5233", ""},
		{"number literal", `16`, KindLiteral, "16", ""},
		{"decimal literal", `1.25`, KindLiteral, "1.25", ""},
		{"ref", `{"$ref":"color/forest/500"}`, KindRef, "", "color/forest/500"},
		{"ref with annotation", `{"$ref":"scale/8","$description":"gutter"}`, KindRef, "", "scale/8"},
		{"ref with extra field", `{"$ref":"scale/8","value":"8"}`, KindInvalid, "", "scale/8"},
		{"missing ref", `{"value":"8"}`, KindInvalid, "", ""},
		{"non string ref", `{"$ref":8}`, KindInvalid, "", ""},
		{"array", `["a"]`, KindInvalid, "", ""},
		{"bool", `true`, KindInvalid, "", ""},
		{"null", `null`, KindInvalid, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := parseEntry([]byte(tt.raw))
			if entry.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s (problem %q)", entry.Kind, tt.kind, entry.Problem)
			}
			if entry.Literal != tt.literal {
				t.Fatalf("literal = %q, want %q", entry.Literal, tt.literal)
			}
			if entry.Ref != tt.ref {
				t.Fatalf("ref = %q, want %q", entry.Ref, tt.ref)
			}
			if entry.Kind == KindInvalid && entry.Problem == "" {
				t.Fatalf("invalid entry without problem")
			}
		})
	}
}

func TestParseDocumentIgnoresMeta(t *testing.T) {
	doc, err := ParseDocument(LayerBase, []byte(`{"meta":"anything","tokens":{"color/a":"#000000"}}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Layer != LayerBase {
		t.Fatalf("layer = %q", doc.Layer)
	}
	if !doc.Has("color/a") || doc.Len() != 1 {
		t.Fatalf("unexpected entries: %+v", doc.Entries)
	}
}

func TestParseDocumentMissingTokens(t *testing.T) {
	doc, err := ParseDocument(LayerAlias, []byte(`{"meta":{}}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Len() != 0 {
		t.Fatalf("expected empty document, got %d entries", doc.Len())
	}
}

func TestParseDocumentInvalidJSON(t *testing.T) {
	_, err := ParseDocument(LayerTypography, []byte(`{"tokens":`))
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestDocumentPathsSorted(t *testing.T) {
	doc, err := ParseDocument(LayerBase, []byte(`{"tokens":{"b":"1","a":"2","c":"3"}}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	paths := doc.Paths()
	if len(paths) != 3 || paths[0] != "a" || paths[1] != "b" || paths[2] != "c" {
		t.Fatalf("unexpected order: %v", paths)
	}
}

func TestBoundedList(t *testing.T) {
	list := newBoundedList[int](3)
	for i := 0; i < 5; i++ {
		list.Add(i)
	}
	if list.Total() != 5 {
		t.Fatalf("total = %d, want 5", list.Total())
	}
	if got := list.Items(); len(got) != 3 || got[2] != 2 {
		t.Fatalf("items = %v", got)
	}
	if !list.Truncated() {
		t.Fatal("expected truncated list")
	}
}
