package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	policy, err := DefaultPolicy()
	require.NoError(t, err)
	require.Equal(t, "builtin", policy.Source)

	rule := policy.Match("color/forest/500")
	require.NotNil(t, rule)
	require.Equal(t, SeverityWarn, rule.Severity)
	require.True(t, rule.Allows("#2F5233"))
	require.False(t, rule.Allows("rgba(0,0,0,0.5)"))

	family := policy.Match("type/font-family/body")
	require.NotNil(t, family)
	require.Equal(t, SeverityWarn, family.Severity)
	require.True(t, family.Allows("anything at all"))

	require.Nil(t, policy.Match("type/line-height/tight"))
}

func TestDefaultPolicyAcceptsSiteTokens(t *testing.T) {
	policy, err := DefaultPolicy()
	require.NoError(t, err)

	set := &Set{
		Base:       mustLoad(t, LayerBase, "testdata/site/"+DefaultBasePath),
		Alias:      mustLoad(t, LayerAlias, "testdata/site/"+DefaultAliasesPath),
		Typography: mustLoad(t, LayerTypography, "testdata/site/"+DefaultTypographyPath),
	}
	result, err := Compile(set, Options{Policy: policy})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
}

func mustLoad(t *testing.T, layer Layer, path string) *Document {
	t.Helper()
	doc, err := LoadDocument(layer, path)
	require.NoError(t, err)
	return doc
}

func TestPolicyLongestPrefixWins(t *testing.T) {
	policy := &Policy{Rules: []Rule{
		{Prefix: "color/", Formats: []Format{FormatHex6}, Severity: SeverityError},
		{Prefix: "color/overlay/", Formats: []Format{FormatRGB}, Severity: SeverityError},
	}}

	rule := policy.Match("color/overlay/dim")
	require.NotNil(t, rule)
	require.Equal(t, "color/overlay/", rule.Prefix)

	rule = policy.Match("color/red/500")
	require.NotNil(t, rule)
	require.Equal(t, "color/", rule.Prefix)
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		format Format
		value  string
		want   bool
	}{
		{FormatHex6, "#A1b2C3", true},
		{FormatHex6, "#abc", false},
		{FormatHex, "#abc", true},
		{FormatHex, "#aabbccdd", true},
		{FormatHex, "#abcde", false},
		{FormatRGB, "rgb(255, 0, 0)", true},
		{FormatRGB, "rgba(0 0 0 / 50%)", true},
		{FormatRGB, "hsl(0, 0%, 0%)", false},
		{FormatInteger, "16", true},
		{FormatInteger, "-16", false},
		{FormatNumber, "-1.5", true},
		{FormatNumber, "1.", false},
		{FormatDimension, "1.5rem", true},
		{FormatDimension, "12pt", false},
		{FormatWeightName, "SemiBold", true},
		{FormatWeightName, "black", false},
		{FormatAny, "", true},
		{Format("nope"), "x", false},
	}
	for _, tt := range tests {
		if got := tt.format.Match(tt.value); got != tt.want {
			t.Errorf("%s.Match(%q) = %v, want %v", tt.format, tt.value, got, tt.want)
		}
	}
}

func TestParsePolicyErrors(t *testing.T) {
	cases := map[string]string{
		"missing formats": "rules:\n  - prefix: color/\n",
		"unknown format":  "rules:\n  - prefix: color/\n    formats: [hsl]\n",
		"bad severity":    "rules:\n  - prefix: color/\n    formats: [hex6]\n    severity: fatal\n",
		"duplicate":       "rules:\n  - prefix: color/\n    formats: [hex6]\n  - prefix: color/\n    formats: [rgb]\n",
		"not yaml":        "rules: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePolicy([]byte(data)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoadPolicyFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	data := "rules:\n  - prefix: color/\n    formats: [HEX6, rgb]\n    severity: Error\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	require.Equal(t, path, policy.Source)
	require.Len(t, policy.Rules, 1)
	require.Equal(t, []Format{FormatHex6, FormatRGB}, policy.Rules[0].Formats)
	require.Equal(t, SeverityError, policy.Rules[0].Severity)

	builtin, err := LoadPolicy("")
	require.NoError(t, err)
	require.Equal(t, "builtin", builtin.Source)
}
