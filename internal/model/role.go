package model

import (
	"errors"
	"strings"
)

// Role is the identity category a user registers under. It is part of the login key.
type Role string

const (
	RoleSurvivor Role = "survivor"
	RoleFirefly  Role = "firefly"
	RoleFedra    Role = "fedra"
)

var ErrUnknownRole = errors.New("unknown role")

// Valid reports whether r is one of the accepted roles
func (r Role) Valid() bool {
	switch r {
	case RoleSurvivor, RoleFirefly, RoleFedra:
		return true
	}
	return false
}

// ParseRole trims and lower-cases s before checking membership, so "FEDRA" and " Fedra" both
// become RoleFedra.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return r, ErrUnknownRole
	}
	return r, nil
}
