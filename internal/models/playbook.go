package models

import "tradejournal/internal/errors"

// Playbook is a named trading plan with an ordered set of rule groups.
type Playbook struct {
	ID     string
	Name   string
	Groups []RuleGroup
}

// RuleGroup is a named, ordered collection of rule items within a playbook.
type RuleGroup struct {
	ID    string
	Name  string
	Items []RuleItem
}

// RuleItem is a single checklist rule. Identity is the ID; for
// cross-playbook matching two items are equivalent when their
// (group name, item text) pair matches after trimming.
type RuleItem struct {
	ID   string
	Text string
}

// Rule returns the group and item for a rule item id, or nil when the
// playbook does not define it.
func (p *Playbook) Rule(itemID string) (*RuleGroup, *RuleItem) {
	for gi := range p.Groups {
		g := &p.Groups[gi]
		for ii := range g.Items {
			if g.Items[ii].ID == itemID {
				return g, &g.Items[ii]
			}
		}
	}
	return nil, nil
}

// Validate checks the playbook for structurally invalid input.
func (p *Playbook) Validate() error {
	if p.ID == "" {
		return errors.NewValidationError("id", p.ID, "required")
	}
	if p.Name == "" {
		return errors.NewValidationError("name", p.Name, "required")
	}
	seen := make(map[string]struct{})
	for _, g := range p.Groups {
		for _, item := range g.Items {
			if item.ID == "" {
				return errors.NewValidationError("rule_id", item.ID, "required")
			}
			if _, dup := seen[item.ID]; dup {
				return errors.NewValidationError("rule_id", item.ID, "duplicate rule id")
			}
			seen[item.ID] = struct{}{}
		}
	}
	return nil
}
