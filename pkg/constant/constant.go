package constant

const (
	// SessionCookieName is the cookie that carries the signed session token.
	SessionCookieName = "jwt"

	DefaultSessionExpiryDays = 30
	DefaultPort              = "5000"
	EnvDevelopment           = "development"
)
