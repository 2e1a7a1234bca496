package domain

// AuthProvider records how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string // empty for users that only sign in with Google
	AuthProvider   AuthProvider
	ProviderUserID string
	Timestamps
}

// Identity is what a verified token resolves to. OwnerID scopes every account operation.
type Identity struct {
	OwnerID string
	Handle  string
	Email   string
}
