// Package memory implementa el repositorio de usuarios en memoria.
// Las cuentas de operador se aprovisionan una sola vez al arrancar a
// partir de AUTH_USERS; la herramienta no tiene registro en caliente.
package memory

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios fijos indexados por username.
type UserRepository struct {
	users map[string]*entity.User
}

// NewUserRepository parsea la cadena AUTH_USERS
// ("username:password:nombre:rol" separado por comas) y hashea las
// contraseñas con bcrypt. Un rol desconocido es un error de arranque.
func NewUserRepository(accounts string) (*UserRepository, error) {
	repo := &UserRepository{users: make(map[string]*entity.User)}

	for _, raw := range strings.Split(accounts, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		fields := strings.SplitN(raw, ":", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("memory: cuenta mal formada %q (se espera username:password:nombre:rol)", raw)
		}
		username := strings.TrimSpace(fields[0])
		password := fields[1]
		name := strings.TrimSpace(fields[2])
		role := strings.TrimSpace(fields[3])

		if username == "" || password == "" {
			return nil, fmt.Errorf("memory: cuenta %q sin username o password", raw)
		}
		if role != entity.RoleAdmin && role != entity.RoleTechnicien {
			return nil, fmt.Errorf("memory: rol desconocido %q para %q", role, username)
		}
		if _, exists := repo.users[username]; exists {
			return nil, fmt.Errorf("memory: username duplicado %q", username)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("memory: hashear password de %q: %w", username, err)
		}
		repo.users[username] = &entity.User{
			Username:     username,
			Name:         name,
			PasswordHash: string(hash),
			Role:         role,
		}
	}
	return repo, nil
}

// FindByUsername devuelve el usuario o nil si no existe.
func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	return r.users[username], nil
}

// Count número de cuentas aprovisionadas.
func (r *UserRepository) Count() int { return len(r.users) }
