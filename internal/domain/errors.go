package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Motor de costeo (MAUC).
	ErrProductNotFound            = errors.New("producto no encontrado")
	ErrInsufficientStock          = errors.New("stock insuficiente")
	ErrUnsupportedTransactionType = errors.New("tipo de transacción no soportado")
	ErrInvalidQuantity            = errors.New("cantidad inválida")
)
