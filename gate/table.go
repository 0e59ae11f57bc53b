package gate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Table is the declarative permission matrix:
// role name → resource name → action name → Rule.
// It is loaded once at startup and treated as immutable afterwards.
type Table map[string]map[string]map[string]Rule

// ParseTable decodes a JSON permission table. A malformed document is a
// configuration error: the caller must not continue without a valid table.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidTable)
	}
	return t, nil
}

// LoadTable reads and parses the permission table from a file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	return ParseTable(data)
}

// Lookup returns the rule for a role/resource/action triple.
// The second return is false when no entry exists (which denies).
func (t Table) Lookup(role, resource string, action Action) (Rule, bool) {
	resources, ok := t[role]
	if !ok {
		return Rule{}, false
	}
	actions, ok := resources[resource]
	if !ok {
		return Rule{}, false
	}
	rule, ok := actions[string(action)]
	return rule, ok
}

// Grants flattens a role's entries into sorted Permission values,
// for display and auditing.
func (t Table) Grants(role string) []Permission {
	resources, ok := t[role]
	if !ok {
		return nil
	}
	var perms []Permission
	for resource, actions := range resources {
		for action := range actions {
			perms = append(perms, NewPermission(resource, Action(action)))
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
