package gate

import (
	"encoding/json"
	"fmt"
)

// Wildcard is the rule marker granting an action unconditionally.
const Wildcard = "*"

// Rule is one entry of the permission table. Three shapes are accepted
// from JSON:
//   - the string "*"            → allowed unconditionally
//   - the empty object {}       → allowed unconditionally
//   - {"field": "subject_key"}  → allowed only when every resource field
//     equals the named subject value (ownership conditions)
//
// An absent entry in the table is the fourth shape: denied.
type Rule struct {
	wildcard   bool
	conditions map[string]string
}

// WildcardRule returns a rule that grants unconditionally.
func WildcardRule() Rule {
	return Rule{wildcard: true}
}

// ConditionRule returns a rule gated on resource-field / subject-key pairs.
// An empty or nil map grants unconditionally, same as the wildcard.
func ConditionRule(conditions map[string]string) Rule {
	return Rule{conditions: conditions}
}

// Unconditional reports whether the rule grants without inspecting a resource.
func (r Rule) Unconditional() bool {
	return r.wildcard || len(r.conditions) == 0
}

// Conditions returns the ownership condition pairs (nil for wildcard rules).
func (r Rule) Conditions() map[string]string {
	return r.conditions
}

// UnmarshalJSON accepts the wildcard string or a condition object.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != Wildcard {
			return fmt.Errorf("%w: unknown rule marker %q", ErrInvalidTable, s)
		}
		*r = WildcardRule()
		return nil
	}
	var conds map[string]string
	if err := json.Unmarshal(data, &conds); err != nil {
		return fmt.Errorf("%w: rule must be %q or an object: %v", ErrInvalidTable, Wildcard, err)
	}
	*r = ConditionRule(conds)
	return nil
}

// MarshalJSON renders wildcard rules back as "*" so a table round-trips.
func (r Rule) MarshalJSON() ([]byte, error) {
	if r.wildcard {
		return json.Marshal(Wildcard)
	}
	if r.conditions == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.conditions)
}

// evaluate checks the rule against a subject and an optional resource.
// Unconditional rules never look at the resource. Condition rules deny
// when the resource is missing, when a named field does not exist, or
// when any field/subject pair differs.
func (r Rule) evaluate(sub Subject, resource Context) bool {
	if r.Unconditional() {
		return true
	}
	if resource == nil {
		return false
	}
	for field, key := range r.conditions {
		got, ok := resource.Field(field)
		if !ok {
			return false
		}
		want, ok := sub.Lookup(key)
		if !ok {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
