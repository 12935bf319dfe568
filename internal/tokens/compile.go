package tokens

import (
	"errors"
	"fmt"
)

// Options tune a compile run.
type Options struct {
	// Policy checks Base literal formats. Nil skips the check.
	Policy *Policy
}

// Stats counts the declarations emitted per layer.
type Stats struct {
	Base       int `json:"base" yaml:"base"`
	Alias      int `json:"alias" yaml:"alias"`
	Typography int `json:"typography" yaml:"typography"`
}

// Result is the output of a successful compile.
type Result struct {
	CSS      string
	Warnings []Warning
	Stats    Stats
}

// Compile validates the three layers and renders the stylesheet. It does
// no I/O: identical inputs always produce identical output.
func Compile(set *Set, opts Options) (*Result, error) {
	if err := checkSet(set); err != nil {
		return nil, err
	}

	warnings, err := validate(set, opts.Policy)
	if err != nil {
		return nil, err
	}

	return &Result{
		CSS:      render(set),
		Warnings: warnings,
		Stats: Stats{
			Base:       set.Base.Len(),
			Alias:      set.Alias.Len(),
			Typography: set.Typography.Len(),
		},
	}, nil
}

func checkSet(set *Set) error {
	if set == nil {
		return errors.New("token set is required")
	}
	docs := []struct {
		doc   *Document
		layer Layer
	}{
		{set.Base, LayerBase},
		{set.Alias, LayerAlias},
		{set.Typography, LayerTypography},
	}
	for _, d := range docs {
		if d.doc == nil {
			return fmt.Errorf("%s document is required", d.layer.Label())
		}
		if d.doc.Layer != d.layer {
			return fmt.Errorf("%s document has layer %q", d.layer.Label(), d.doc.Layer)
		}
	}
	return nil
}
