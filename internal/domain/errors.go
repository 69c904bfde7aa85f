package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrProductDeleted         = errors.New("el producto está eliminado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidProductType     = errors.New("tipo de producto no admite ficha técnica")
	ErrInvalidSupplyType      = errors.New("tipo de producto no puede ser insumo")
	ErrSelfReference          = errors.New("un producto no puede ser insumo de sí mismo")
	ErrCircularDependency     = errors.New("dependencia circular en la ficha técnica")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrUnknownCurrency        = errors.New("moneda no registrada en el negocio")
	ErrMissingMainCurrency    = errors.New("el negocio no tiene moneda principal definida")
	ErrMissingPriceSystem     = errors.New("sistema de precios no encontrado")
	ErrConcurrentModification = errors.New("conflicto por modificación concurrente")
)

// CircularDependencyError indica qué producto cerraría el ciclo en la ficha técnica.
// Se desenvuelve a ErrCircularDependency para manejo con errors.Is.
type CircularDependencyError struct {
	ProductID   string
	ProductName string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("el producto %s (%s) ya pertenece a la cadena de insumos", e.ProductName, e.ProductID)
}

func (e *CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}
