package tokens

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBasePalette(t *testing.T) {
	base := mustParse(t, LayerBase, `{"tokens":{
		"color/forest/500":"#2F5233",
		"color/forest/100":"#E3EDE4",
		"color/text/body/white":"#FFFFFF",
		"color/solo":"#000000",
		"scale/4":"4"
	}}`)

	palette := BasePalette(base)
	require.Len(t, palette, 2)

	require.Equal(t, "forest", palette[0].Name)
	require.Equal(t, []Swatch{
		{Shade: "100", CSSVar: "var(--base-color-forest-100)", Value: "#E3EDE4"},
		{Shade: "500", CSSVar: "var(--base-color-forest-500)", Value: "#2F5233"},
	}, palette[0].Shades)

	require.Equal(t, "text", palette[1].Name)
	require.Equal(t, "body/white", palette[1].Shades[0].Shade)
}

func TestAliasTokenGroups(t *testing.T) {
	base := mustParse(t, LayerBase, `{"tokens":{"color/red/500":"#FF0000","scale/16":"16"}}`)
	alias := mustParse(t, LayerAlias, `{"tokens":{
		"sizes/spacing/sp-16":{"$ref":"scale/16"},
		"color/text/error/default":{"$ref":"color/red/500"},
		"motion/fast":{"$ref":"scale/16"}
	}}`)

	groups := AliasTokenGroups(alias, base)
	require.Equal(t, []PreviewItem{{
		Name:   "color/text/error/default",
		CSSVar: "var(--alias-color-text-error-default)",
		Ref:    "color/red/500",
		Value:  "#FF0000",
	}}, groups.Colors)
	require.Equal(t, []PreviewItem{{
		Name:   "sizes/spacing/sp-16",
		CSSVar: "var(--alias-sizes-spacing-sp-16)",
		Ref:    "scale/16",
		Value:  "16px",
	}}, groups.Sizes)
}

func TestBuildPreviewSiteTokens(t *testing.T) {
	set, err := NewPipeline(DefaultPaths("testdata/site"), Options{}, zerolog.Nop()).Load()
	require.NoError(t, err)

	preview := BuildPreview(set)
	require.NotEmpty(t, preview.Palette)
	require.Len(t, preview.Aliases.Colors, 11)
	require.Len(t, preview.Aliases.Sizes, 7)
	require.Len(t, preview.Typography, 10)

	for i := 1; i < len(preview.Typography); i++ {
		require.Less(t, preview.Typography[i-1].Name, preview.Typography[i].Name)
	}

	first := preview.Typography[0]
	require.Equal(t, "font-family/body", first.Name)
	require.Equal(t, "var(--typography-font-family-body)", first.CSSVar)
	require.Equal(t, `"Inter"`, first.Value)
}
