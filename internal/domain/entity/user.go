package entity

// Roles de usuario de la aplicación.
const (
	RoleAdmin      = "admin"      // gestiona el catálogo de piezas
	RoleTechnicien = "technicien" // registra salidas y recepciones
)

// User cuenta de operador para el login. Las cuentas se aprovisionan
// desde la configuración al arrancar (herramienta de un solo departamento,
// sin auto-registro).
type User struct {
	Username     string
	Name         string
	PasswordHash string // bcrypt
	Role         string
}
