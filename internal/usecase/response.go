// Package usecase contains the request→response application operations.
// Each use case authorizes through the policy engine, validates input,
// applies entity mutations and persists once, at the end. Failures are
// returned as structured responses; no error escapes to the caller.
package usecase

// Error categories shared by every use case response. Value-object
// validation failures carry the underlying message instead of a fixed
// category, so the presentation layer can render one error style for
// every operation.
const (
	ErrorPermission = "Permission"
	ErrorResource   = "Ressource"
	ErrorBusiness   = "Erreur Métier"
)
