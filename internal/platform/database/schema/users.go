package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	Email:        "email",
	Name:         "name",
	PasswordHash: "password_hash",
	CreatedAt:    "created_at",
}

// UserRolesTable represents the 'user_roles' table
type UserRolesTable struct {
	Table  string
	UserID string
	Role   string
}

// UserRoles is the schema definition for user_roles
var UserRoles = UserRolesTable{
	Table:  "user_roles",
	UserID: "user_id",
	Role:   "role",
}
