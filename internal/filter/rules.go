package filter

import (
	"strings"

	"tradejournal/internal/models"
)

// ruleSignature identifies a rule by content rather than id. Two rule
// items in different playbooks are the same rule when their group name
// and item text match after trimming (case-sensitive).
type ruleSignature struct {
	Group string
	Text  string
}

func signatureOf(group *models.RuleGroup, item *models.RuleItem) ruleSignature {
	return ruleSignature{
		Group: strings.TrimSpace(group.Name),
		Text:  strings.TrimSpace(item.Text),
	}
}

// selectedSignatures resolves the selected rule ids to content
// signatures across every playbook in the catalog. Stale ids that no
// playbook defines resolve to nothing.
func selectedSignatures(catalog *models.Catalog, ruleIDs []string) map[ruleSignature]struct{} {
	sigs := make(map[ruleSignature]struct{})
	for _, id := range ruleIDs {
		for pi := range catalog.Playbooks {
			if g, item := catalog.Playbooks[pi].Rule(id); item != nil {
				sigs[signatureOf(g, item)] = struct{}{}
			}
		}
	}
	return sigs
}

// expandSignatures maps content signatures back to the full id set of
// every rule item, in any playbook, carrying one of those signatures.
func expandSignatures(catalog *models.Catalog, sigs map[ruleSignature]struct{}) map[string]struct{} {
	ids := make(map[string]struct{})
	for pi := range catalog.Playbooks {
		pb := &catalog.Playbooks[pi]
		for gi := range pb.Groups {
			g := &pb.Groups[gi]
			for ii := range g.Items {
				if _, ok := sigs[signatureOf(g, &g.Items[ii])]; ok {
					ids[g.Items[ii].ID] = struct{}{}
				}
			}
		}
	}
	return ids
}

// followedSignatures resolves a trade's followed rule ids against its
// own playbook. Ids the playbook does not define drop out.
func followedSignatures(pb *models.Playbook, followed []string) map[ruleSignature]struct{} {
	sigs := make(map[ruleSignature]struct{})
	if pb == nil {
		return sigs
	}
	for _, id := range followed {
		if g, item := pb.Rule(id); item != nil {
			sigs[signatureOf(g, item)] = struct{}{}
		}
	}
	return sigs
}

// playbooksOwningRules returns the ids of playbooks that define at least
// one of the selected rule ids. Used to strip playbooks that are only
// implicitly selected through a checked rule.
func playbooksOwningRules(catalog *models.Catalog, ruleIDs []string) map[string]struct{} {
	owners := make(map[string]struct{})
	for pi := range catalog.Playbooks {
		pb := &catalog.Playbooks[pi]
		for _, id := range ruleIDs {
			if _, item := pb.Rule(id); item != nil {
				owners[pb.ID] = struct{}{}
				break
			}
		}
	}
	return owners
}

// rulePredicate builds the rules category predicate.
//
// Strict mode matches literal ids. Cross mode first lifts the selection
// to content signatures: under AND every required signature must appear
// among the trade's followed-rule signatures (a trade whose playbook
// does not define a signature fails); under OR the signatures expand
// back to ids across every playbook and any intersection matches.
func (f *Filter) rulePredicate() predicate {
	st := &f.State
	and := st.and()

	if !st.CrossPlaybooks {
		selected := stringSet(st.RuleIDs)
		return func(t models.Trade) bool {
			followed := stringSet(t.RulesFollowed)
			return matchSet(selected, followed, and)
		}
	}

	sigs := selectedSignatures(f.Catalog, st.RuleIDs)
	if and {
		return func(t models.Trade) bool {
			pb := f.Catalog.Playbook(t.PlaybookID)
			have := followedSignatures(pb, t.RulesFollowed)
			if len(sigs) == 0 {
				// Every selected id is stale; nothing can satisfy it.
				return false
			}
			for sig := range sigs {
				if _, ok := have[sig]; !ok {
					return false
				}
			}
			return true
		}
	}
	expanded := expandSignatures(f.Catalog, sigs)
	return func(t models.Trade) bool {
		for _, id := range t.RulesFollowed {
			if _, ok := expanded[id]; ok {
				return true
			}
		}
		return false
	}
}

func stringSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// matchSet applies AND (all required present) or OR (any present)
// between a required id set and the trade's id set.
func matchSet(required, have map[string]struct{}, and bool) bool {
	if and {
		for id := range required {
			if _, ok := have[id]; !ok {
				return false
			}
		}
		return len(required) > 0
	}
	for id := range required {
		if _, ok := have[id]; ok {
			return true
		}
	}
	return false
}
