package respond

import (
	"regexp"
)

var (
	// jwtPattern matches compact JWS tokens such as session cookies.
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// bcryptPattern matches bcrypt hashes ($2a$, $2b$, $2y$).
	bcryptPattern = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)

	// dbPasswordPattern matches credentials inside a DSN (postgres://, mongodb://, ...).
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError returns the error message with secrets masked.
// Session tokens, password hashes and DSN passwords never reach the logs verbatim.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = jwtPattern.ReplaceAllString(msg, "eyJ****")
	msg = bcryptPattern.ReplaceAllString(msg, "$$2*$$****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
