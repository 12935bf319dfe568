package tokens

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestBaseDeclaration(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value string
		want  string
	}{
		{"scale px", "scale/4", "16", "--base-scale-4: 16px;"},
		{"scale trims", "scale/4", " 16 ", "--base-scale-4: 16px;"},
		{"scale non numeric", "scale/ratio", "1.5", "--base-scale-ratio: 1.5;"},
		{"scale with unit", "scale/rem", "2rem", "--base-scale-rem: 2rem;"},
		{"font family quoted", "type/font-family/body", "  Inter ", `--base-type-font-family-body: "Inter";`},
		{"font family with quote", "type/font-family/mono", `My "Mono"`, `--base-type-font-family-mono: "My \"Mono\"";`},
		{"font family keeps ampersand", "type/font-family/brand", "A&B", `--base-type-font-family-brand: "A&B";`},
		{"weight semibold", "type/font-weight/heading", "SemiBold", "--base-type-font-weight-heading: 600;"},
		{"weight regular", "type/font-weight/body", " regular ", "--base-type-font-weight-body: 400;"},
		{"weight bold", "type/font-weight/strong", "BOLD", "--base-type-font-weight-strong: 700;"},
		{"weight unmapped", "type/font-weight/heading", "black", `--base-type-font-weight-heading: "black";`},
		{"weight unmapped keeps case", "type/font-weight/heading", " Black ", `--base-type-font-weight-heading: "Black";`},
		{"weight numeric quoted", "type/font-weight/medium", "500", `--base-type-font-weight-medium: "500";`},
		{"color verbatim", "color/forest/500", " #2F5233 ", "--base-color-forest-500: #2F5233;"},
		{"other verbatim", "type/line-height/tight", "1.2", "--base-type-line-height-tight: 1.2;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := baseDeclaration(tt.path, tt.value); got != tt.want {
				t.Fatalf("baseDeclaration(%q, %q) = %s, want %s", tt.path, tt.value, got, tt.want)
			}
		})
	}
}

func TestVarName(t *testing.T) {
	if got := VarName(LayerAlias, "sizes/spacing/sp-16"); got != "--alias-sizes-spacing-sp-16" {
		t.Fatalf("VarName = %q", got)
	}
	if got := VarRef(LayerTypography, "fontsize/body/large"); got != "var(--typography-fontsize-body-large)" {
		t.Fatalf("VarRef = %q", got)
	}
}

func TestRenderSiteTokensSnapshot(t *testing.T) {
	pipeline := NewPipeline(DefaultPaths("testdata/site"), Options{}, zerolog.Nop())
	set, err := pipeline.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	result, err := Compile(set, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	snaps.MatchSnapshot(t, result.CSS)
}
