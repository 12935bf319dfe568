package tokens

import "fmt"

// Warning is a non-fatal finding reported alongside a successful compile.
type Warning struct {
	Layer   Layer  `json:"layer" yaml:"layer"`
	Path    string `json:"path" yaml:"path"`
	Value   string `json:"value" yaml:"value"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s = %q: %s", w.Layer.Label(), w.Path, w.Value, w.Message)
}

// validate runs the checks in order and stops at the first one that
// reports violations.
func validate(set *Set, policy *Policy) ([]Warning, error) {
	checks := []func() error{
		func() error { return checkRefOnly(set.Alias) },
		func() error { return checkRefOnly(set.Typography) },
		func() error { return checkRefsResolve(set.Alias, set.Base) },
		func() error { return checkRefsResolve(set.Typography, set.Base) },
		func() error { return checkLiteralOnly(set.Base) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return nil, err
		}
	}

	if policy == nil {
		return nil, nil
	}
	return checkLiteralFormats(set.Base, policy)
}

func checkRefOnly(doc *Document) error {
	bad := newBoundedList[string](maxListed)
	for _, path := range doc.Paths() {
		if doc.Entries[path].Kind != KindRef {
			bad.Add(path)
		}
	}
	if bad.Total() == 0 {
		return nil
	}
	return newValidationError(ErrNotRefOnly, doc.Layer, bad)
}

func checkRefsResolve(doc, base *Document) error {
	missing := newBoundedList[string](maxListed)
	for _, path := range doc.Paths() {
		ref := doc.Entries[path].Ref
		if !base.Has(ref) {
			missing.Add(path + " -> " + ref)
		}
	}
	if missing.Total() == 0 {
		return nil
	}
	return newValidationError(ErrDanglingRef, doc.Layer, missing)
}

func checkLiteralOnly(doc *Document) error {
	bad := newBoundedList[string](maxListed)
	for _, path := range doc.Paths() {
		if doc.Entries[path].Kind != KindLiteral {
			bad.Add(path)
		}
	}
	if bad.Total() == 0 {
		return nil
	}
	return newValidationError(ErrNotLiteral, doc.Layer, bad)
}

func checkLiteralFormats(doc *Document, policy *Policy) ([]Warning, error) {
	var warnings []Warning
	bad := newBoundedList[string](maxListed)

	for _, path := range doc.Paths() {
		rule := policy.Match(path)
		if rule == nil {
			continue
		}
		value := doc.Entries[path].Literal
		if rule.Allows(value) {
			continue
		}
		if rule.Severity == SeverityError {
			bad.Add(fmt.Sprintf("%s = %q (want %s)", path, value, rule.FormatList()))
			continue
		}
		warnings = append(warnings, Warning{
			Layer:   doc.Layer,
			Path:    path,
			Value:   value,
			Message: "expected " + rule.FormatList(),
		})
	}

	if bad.Total() > 0 {
		return nil, newValidationError(ErrLiteralFormat, doc.Layer, bad)
	}
	return warnings, nil
}
