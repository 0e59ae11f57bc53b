package models

import "errors"

// Domain sentinel errors. Use cases match on these with errors.Is to map
// entity failures onto their response categories.
var (
	ErrInvalidAmount = errors.New("montant invalide")
	ErrInvalidEmail  = errors.New("e-mail invalide")
	ErrInvalidPhone  = errors.New("téléphone invalide")
	ErrBusinessRule  = errors.New("règle métier violée")
	ErrPermission    = errors.New("permission refusée")
	ErrValidation    = errors.New("validation échouée")
)
