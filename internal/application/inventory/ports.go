package inventory

// SessionReader expone el usuario de la sesión activa. Lo implementa *auth.Guard.
type SessionReader interface {
	Username() string
}
