package controllers

var validRoles = map[string]struct{}{
	"admin": {},
	"staff": {},
}

func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}
