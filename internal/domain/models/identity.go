package models

// Identity is the resolved authenticated caller, passed explicitly into every
// service operation that needs authorization.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
