package models

// User represents a registered account
// Password is stored as submitted and never returned in JSON responses
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// UserSummary is the public projection of a user
type UserSummary struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// Summary drops the password
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// RegisterRequest represents the request to register a user
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request to check credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned by POST /register
type RegisterResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginResponse is returned by POST /login
type LoginResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// UsersResponse is returned by GET /users
type UsersResponse struct {
	Status string        `json:"status"`
	Users  []UserSummary `json:"users"`
}
