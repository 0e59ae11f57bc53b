package gate

// Subject identifies the acting user for an authorization check.
type Subject struct {
	ID   uint
	Role string
}

// Keys a condition rule may reference on the subject side.
const (
	SubjectKeyID   = "user_current_id"
	SubjectKeyRole = "user_current_role"
)

// Lookup resolves a subject key used on the right-hand side of a condition.
func (s Subject) Lookup(key string) (any, bool) {
	switch key {
	case SubjectKeyID:
		return s.ID, true
	case SubjectKeyRole:
		return s.Role, true
	}
	return nil, false
}

// Zero reports whether the subject is unset (no authenticated user).
func (s Subject) Zero() bool {
	return s.ID == 0 && s.Role == ""
}

// Context exposes read-only access to the fields of the resource a
// conditional rule inspects. Domain entities implement it explicitly,
// which keeps condition mappings checkable without reflection.
type Context interface {
	Field(name string) (any, bool)
}
