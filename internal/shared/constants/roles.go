package constants

// User roles carried in JWT claims (issued by the external auth service)
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
