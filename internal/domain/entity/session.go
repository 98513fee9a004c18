package entity

// SessionState distinguishes a trusted session from an optimistically restored one.
type SessionState int

const (
	SessionAnonymous SessionState = iota
	// SessionPending is a session restored from storage whose token has not been
	// re-validated against the backend yet.
	SessionPending
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionPending:
		return "pending"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is the credential + identity pair held for the current process.
// Token and User are either both set or both empty.
type Session struct {
	Token string
	User  *User
}

// Complete reports whether both halves of the session are present.
func (s *Session) Complete() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// LogoutReason records why a session ended.
type LogoutReason string

const (
	LogoutRequested          LogoutReason = "requested"
	LogoutRevalidationFailed LogoutReason = "revalidation_failed"
	LogoutAuthRejected       LogoutReason = "auth_rejected"
	LogoutCorruptState       LogoutReason = "corrupt_state"
	LogoutTokenExpired       LogoutReason = "token_expired"
)
