package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/infrastructure/memory"
)

func TestNewUserRepository_ParseaCuentas(t *testing.T) {
	repo, err := memory.NewUserRepository("brahim:s3cret:Brahim A.:admin, fatima:pass123:Fatima Z.:technicien")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())

	user, err := repo.FindByUsername("brahim")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Brahim A.", user.Name)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")),
		"la password se guarda hasheada")

	missing, err := repo.FindByUsername("nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNewUserRepository_Errores(t *testing.T) {
	_, err := memory.NewUserRepository("brahim:pass:Brahim")
	assert.Error(t, err, "faltan campos")

	_, err = memory.NewUserRepository("brahim:pass:Brahim:superuser")
	assert.Error(t, err, "rol desconocido")

	_, err = memory.NewUserRepository("brahim:a:B:admin,brahim:b:B:admin")
	assert.Error(t, err, "username duplicado")

	repo, err := memory.NewUserRepository("")
	require.NoError(t, err, "cadena vacía = sin cuentas")
	assert.Equal(t, 0, repo.Count())
}
