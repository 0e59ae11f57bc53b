// Package gate provides a rule-table authorization engine. A Gate holds a
// declarative permission table (role → resource → action → rule) and decides
// whether a subject may perform an action, optionally conditioned on fields
// of the targeted resource (ownership checks). The package has no
// dependencies on domain models and can be reused across applications.
package gate

import "context"

// Decision is passed to the optional trace hook after every evaluation.
type Decision struct {
	Subject  Subject
	Action   Action
	Resource string
	Allowed  bool
	// Reason is "wildcard", "unconditional", "conditions", "no-subject",
	// "no-rule" or "conditions-failed".
	Reason string
}

// Gate is the central authorization checkpoint.
type Gate struct {
	table Table

	// Trace, when set, receives every authorization decision. Intended
	// for debug logging; it must not block.
	Trace func(Decision)
}

// New creates a Gate over an already-loaded permission table.
func New(table Table) *Gate {
	return &Gate{table: table}
}

// Authorize checks authorization and returns an error if denied.
// Returns ErrUnauthorized for a zero subject, a missing table entry, or
// failed ownership conditions.
func (g *Gate) Authorize(_ context.Context, sub Subject, action Action, resourceType string, resource Context) error {
	if sub.Zero() {
		g.trace(sub, action, resourceType, false, "no-subject")
		return ErrUnauthorized
	}
	rule, ok := g.table.Lookup(sub.Role, resourceType, action)
	if !ok {
		g.trace(sub, action, resourceType, false, "no-rule")
		return ErrUnauthorized
	}
	if rule.Unconditional() {
		reason := "unconditional"
		if rule.wildcard {
			reason = "wildcard"
		}
		g.trace(sub, action, resourceType, true, reason)
		return nil
	}
	if !rule.evaluate(sub, resource) {
		g.trace(sub, action, resourceType, false, "conditions-failed")
		return ErrUnauthorized
	}
	g.trace(sub, action, resourceType, true, "conditions")
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(ctx context.Context, sub Subject, action Action, resourceType string, resource Context) bool {
	return g.Authorize(ctx, sub, action, resourceType, resource) == nil
}

func (g *Gate) trace(sub Subject, action Action, resourceType string, allowed bool, reason string) {
	if g.Trace != nil {
		g.Trace(Decision{Subject: sub, Action: action, Resource: resourceType, Allowed: allowed, Reason: reason})
	}
}
