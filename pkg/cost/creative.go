package cost

import (
	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/ledger"
)

// CreativeKind discriminates the creative-space choice.
type CreativeKind string

const (
	CreativeUndecided CreativeKind = ""
	CreativeTemplate  CreativeKind = "template"
	CreativeCustom    CreativeKind = "custom"
	CreativeSkipped   CreativeKind = "skipped"
)

// CreativeChoice is a template, a custom entry, or an explicit skip.
type CreativeChoice struct {
	Kind       CreativeKind `json:"kind" yaml:"kind" toml:"kind"`
	TemplateID string       `json:"template_id,omitempty" yaml:"template_id,omitempty" toml:"template_id,omitempty"`
	Name       string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Budget     float64      `json:"budget,omitempty" yaml:"budget,omitempty" toml:"budget,omitempty"`
}

// TemplateChoice selects a catalog template.
func TemplateChoice(id string) CreativeChoice {
	return CreativeChoice{Kind: CreativeTemplate, TemplateID: id}
}

// CustomChoice describes a user-defined space with its own budget.
func CustomChoice(name string, budget float64) CreativeChoice {
	return CreativeChoice{Kind: CreativeCustom, Name: name, Budget: budget}
}

// SkipChoice opts out of a creative space.
func SkipChoice() CreativeChoice {
	return CreativeChoice{Kind: CreativeSkipped}
}

// Decided reports whether any of the three choices has been made.
func (c CreativeChoice) Decided() bool {
	return c.Kind != CreativeUndecided
}

// DisplayName is the template or custom name; empty for a skip.
func (c CreativeChoice) DisplayName(cat *catalog.Catalog) string {
	switch c.Kind {
	case CreativeTemplate:
		if cat == nil {
			return ""
		}
		if t := cat.Template(c.TemplateID); t != nil {
			return t.Name
		}
	case CreativeCustom:
		return c.Name
	}
	return ""
}

// TemplateCost is the rounded midpoint of a template's cost range.
func TemplateCost(t catalog.CreativeTemplate) float64 {
	return Round((t.MinCost + t.MaxCost) / 2)
}

// CreativeItems prices the choice: one item for a template or custom space,
// nothing for a skip or an unknown template.
func CreativeItems(cat *catalog.Catalog, choice CreativeChoice) []ledger.LineItem {
	switch choice.Kind {
	case CreativeTemplate:
		if cat == nil {
			return nil
		}
		t := cat.Template(choice.TemplateID)
		if t == nil {
			return nil
		}
		return []ledger.LineItem{{Label: t.Name, Value: TemplateCost(*t), Category: ledger.OneTimeMoney, Key: t.ID}}
	case CreativeCustom:
		return []ledger.LineItem{{Label: choice.Name, Value: Round(choice.Budget), Category: ledger.OneTimeMoney, Key: "custom"}}
	}
	return nil
}
