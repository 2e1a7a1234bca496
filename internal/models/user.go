package models

// User represents a row of the users table.
type User struct {
	ID             string `db:"id"`
	Username       string `db:"username"`
	Email          string `db:"email"`
	PasswordHash   string `db:"password_hash"`
	AuthProvider   string `db:"auth_provider"`
	ProviderUserID string `db:"provider_user_id"`
	Timestamps
}

func (u *User) ScanTargets() []any {
	return []any{
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AuthProvider,
		&u.ProviderUserID,
		&u.CreatedAt,
		&u.UpdatedAt,
	}
}

const UserColumns = "id, username, email, password_hash, auth_provider, provider_user_id, created_at, updated_at"
