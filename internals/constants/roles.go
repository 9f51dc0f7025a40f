package constants

const (
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
	RoleAccountant = "accountant"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
)

var (
	AllRoles = []string{
		RoleAdmin,
		RoleOperator,
		RoleAccountant,
		RoleTeacher,
		RoleStudent,
	}

	// Roles allowed to touch the billing surface.
	BillingRoles = []string{
		RoleAdmin,
		RoleOperator,
		RoleAccountant,
	}
)
