package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrCompanyNotFound = errors.New("empresa no encontrada o sin bodegas")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInternal        = errors.New("error interno")
)
