package constants

import "fmt"

const (
	RoleUser    = "user"
	RoleGerente = "gerente"
	RoleAdmin   = "admin"
)

// Template de mensagens de erro por role
const (
	ErrOnlyAdminsCanAccess   = "❌ Apenas admin pode acessar %s."
	ErrOnlyManagersCanAccess = "❌ Apenas gerente ou admin pode acessar %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleGerente,
		RoleAdmin,
	}

	ManagerAndAbove = []string{
		RoleGerente,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
