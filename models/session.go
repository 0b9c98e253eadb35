package models

// SessionPointer is the singleton current-user reference. It holds only the
// user id; the user record itself lives in the directory. A pointer whose
// target no longer resolves is treated as an absent session.
type SessionPointer struct {
	UserID string `json:"userId"`
}
