// Package policy wires the gate rule-table engine into the application:
// it loads the permission table, exposes the authorization descriptor the
// use cases carry, and logs every decision at debug level.
package policy

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"

	"github.com/diewo77/go-crm/gate"
)

// Resource names used in the permission table.
const (
	ResourceClient  = "CLIENT"
	ResourceContrat = "CONTRAT"
	ResourceEvent   = "EVENT"
	ResourceUser    = "USER"
)

//go:embed permissions.json
var defaultTable []byte

// RequestPolicy is the authorization descriptor every write use case
// carries: acting subject, target resource/action, and the loaded target
// entity for conditional (ownership) rules. Context is set by the use
// case after loading the entity.
type RequestPolicy struct {
	Subject  gate.Subject
	Resource string
	Action   gate.Action
	Context  gate.Context
}

// Engine owns the permission table for the process lifetime. The table
// is loaded once at startup and injected; it is never re-read mid-process.
type Engine struct {
	gate  *gate.Gate
	table gate.Table
}

// NewEngine builds an engine over a loaded table. A non-nil logger
// receives every authorization decision at debug level.
func NewEngine(table gate.Table, log *zap.Logger) *Engine {
	g := gate.New(table)
	if log != nil {
		g.Trace = func(d gate.Decision) {
			log.Debug("authorization decision",
				zap.Uint("user_id", d.Subject.ID),
				zap.String("role", d.Subject.Role),
				zap.String("resource", d.Resource),
				zap.String("action", string(d.Action)),
				zap.Bool("allowed", d.Allowed),
				zap.String("reason", d.Reason),
			)
		}
	}
	return &Engine{gate: g, table: table}
}

// Load reads the permission table from path, or falls back to the
// compiled-in default when path is empty. A missing or malformed file is
// a configuration error: the process must not continue without a table.
func Load(path string, log *zap.Logger) (*Engine, error) {
	var (
		table gate.Table
		err   error
	)
	if path == "" {
		table, err = gate.ParseTable(defaultTable)
	} else {
		table, err = gate.LoadTable(path)
	}
	if err != nil {
		return nil, fmt.Errorf("permission table: %w", err)
	}
	return NewEngine(table, log), nil
}

// Authorize evaluates the descriptor against the table.
func (e *Engine) Authorize(ctx context.Context, req RequestPolicy) error {
	return e.gate.Authorize(ctx, req.Subject, req.Action, req.Resource, req.Context)
}

// IsAllowed is the boolean form of Authorize.
func (e *Engine) IsAllowed(ctx context.Context, req RequestPolicy) bool {
	return e.Authorize(ctx, req) == nil
}

// Grants lists a role's table entries for display and auditing.
func (e *Engine) Grants(role string) []gate.Permission {
	return e.table.Grants(role)
}
