package auth

import "redemption-ledger/internal/pkg/errs"

var ErrInvalidRole = errs.New("invalid role")

// Role is carried in access tokens issued by the identity provider.
type Role string

const (
	RoleMember   Role = "member"
	RoleOperator Role = "operator"
)

var roleRank = map[Role]int{
	RoleMember:   1,
	RoleOperator: 2,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && min.IsValid() && roleRank[r] >= roleRank[min]
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
