package tokens

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/policy.yaml
var builtinPolicy []byte

// Format names an allowed shape for a Base literal.
type Format string

const (
	FormatHex6       Format = "hex6"
	FormatHex        Format = "hex"
	FormatRGB        Format = "rgb"
	FormatInteger    Format = "integer"
	FormatNumber     Format = "number"
	FormatDimension  Format = "dimension"
	FormatWeightName Format = "weight-name"
	FormatAny        Format = "any"
)

var (
	hex6Pattern      = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hexPattern       = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbPattern       = regexp.MustCompile(`^rgba?\(\s*[0-9.%\s,/]+\)$`)
	integerPattern   = regexp.MustCompile(`^[0-9]+$`)
	numberPattern    = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?$`)
	dimensionPattern = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?(?:px|rem|em|%)$`)
)

// Match reports whether the trimmed value has this format.
func (f Format) Match(value string) bool {
	value = strings.TrimSpace(value)
	switch f {
	case FormatHex6:
		return hex6Pattern.MatchString(value)
	case FormatHex:
		return hexPattern.MatchString(value)
	case FormatRGB:
		return rgbPattern.MatchString(value)
	case FormatInteger:
		return integerPattern.MatchString(value)
	case FormatNumber:
		return numberPattern.MatchString(value)
	case FormatDimension:
		return dimensionPattern.MatchString(value)
	case FormatWeightName:
		_, ok := fontWeights[strings.ToLower(value)]
		return ok
	case FormatAny:
		return true
	default:
		return false
	}
}

func (f Format) valid() bool {
	switch f {
	case FormatHex6, FormatHex, FormatRGB, FormatInteger, FormatNumber,
		FormatDimension, FormatWeightName, FormatAny:
		return true
	}
	return false
}

// Severity decides whether a rule violation fails the build.
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Rule restricts the literal formats allowed under a Base path prefix.
type Rule struct {
	Prefix   string   `yaml:"prefix"`
	Formats  []Format `yaml:"formats"`
	Severity Severity `yaml:"severity,omitempty"`
}

// Allows reports whether value matches any of the rule's formats.
func (r *Rule) Allows(value string) bool {
	for _, f := range r.Formats {
		if f.Match(value) {
			return true
		}
	}
	return false
}

// FormatList renders the allowed formats as "a|b".
func (r *Rule) FormatList() string {
	names := make([]string, len(r.Formats))
	for i, f := range r.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

// Policy is the set of literal-format rules applied to the Base layer.
type Policy struct {
	Rules  []Rule `yaml:"rules"`
	Source string `yaml:"-"`
}

// Match returns the rule with the longest prefix matching path, or nil.
func (p *Policy) Match(path string) *Rule {
	if p == nil {
		return nil
	}
	var best *Rule
	for i := range p.Rules {
		rule := &p.Rules[i]
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if best == nil || len(rule.Prefix) > len(best.Prefix) {
			best = rule
		}
	}
	return best
}

// DefaultPolicy returns the policy bundled with the binary.
func DefaultPolicy() (*Policy, error) {
	policy, err := ParsePolicy(builtinPolicy)
	if err != nil {
		return nil, fmt.Errorf("parse builtin policy: %w", err)
	}
	policy.Source = "builtin"
	return policy, nil
}

// LoadPolicy reads a policy file. An empty path selects the builtin policy.
func LoadPolicy(path string) (*Policy, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPolicy()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", path, err)
	}
	policy, err := ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", path, err)
	}
	policy.Source = path
	return policy, nil
}

// ParsePolicy decodes and normalizes a YAML policy document.
func ParsePolicy(data []byte) (*Policy, error) {
	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for i := range policy.Rules {
		if err := normalizeRule(&policy.Rules[i]); err != nil {
			return nil, fmt.Errorf("policy rule %d: %w", i+1, err)
		}
		prefix := policy.Rules[i].Prefix
		if _, exists := seen[prefix]; exists {
			return nil, fmt.Errorf("duplicate policy prefix %q", prefix)
		}
		seen[prefix] = struct{}{}
	}

	return &policy, nil
}

func normalizeRule(rule *Rule) error {
	rule.Prefix = strings.TrimSpace(rule.Prefix)

	if len(rule.Formats) == 0 {
		return fmt.Errorf("formats are required")
	}
	for i, f := range rule.Formats {
		f = Format(strings.ToLower(strings.TrimSpace(string(f))))
		if !f.valid() {
			return fmt.Errorf("unknown format %q", f)
		}
		rule.Formats[i] = f
	}

	severity := Severity(strings.ToLower(strings.TrimSpace(string(rule.Severity))))
	switch severity {
	case "":
		rule.Severity = SeverityWarn
	case SeverityWarn, SeverityError:
		rule.Severity = severity
	default:
		return fmt.Errorf("unknown severity %q", rule.Severity)
	}

	return nil
}
