package service

import "errors"

// Business errors shared across services. Handlers translate them to HTTP
// statuses with errors.Is; anything else is a 500.
var (
	ErrIntrouvable      = errors.New("ressource introuvable")
	ErrStockInsuffisant = errors.New("stock insuffisant")
	ErrEtatInvalide     = errors.New("transition d'état invalide")
)
