package domain

type Role string

const (
	RoleHost   Role = "host"
	RoleMember Role = "member"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
)

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedOn    string     `json:"created_on"`
}

func (u *User) IsHost() bool {
	return u.Role == RoleHost
}

func (u *User) IsApproved() bool {
	return u.Status == UserStatusApproved
}
