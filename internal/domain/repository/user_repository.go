package repository

import "github.com/emicampus/gmao-stock/internal/domain/entity"

// UserRepository acceso a las cuentas de operador.
type UserRepository interface {
	// FindByUsername devuelve nil, nil si el usuario no existe.
	FindByUsername(username string) (*entity.User, error)
}
