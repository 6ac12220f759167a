package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// weakPasswordList contains common weak passwords that must be rejected.
// This list includes the most commonly used passwords and their variations.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
}

const (
	// minPasswordLength is the minimum required password length for admin credentials
	minPasswordLength = 12
)

// ValidateAdminIdentity validates the configured admin identity at startup.
// It must be called before the server starts so that it never runs with an
// empty or weak credential.
//
// Requirements:
//   - Email must not be empty
//   - Either a bcrypt PasswordHash or a plaintext Password must be set
//   - A plaintext password must be at least 12 characters and must not be a
//     numeric sequence, a keyboard pattern or a common weak password
//
// The error message is safe to log and never contains the secret itself.
func ValidateAdminIdentity(id AdminIdentity) error {
	if id.Email == "" {
		return fmt.Errorf("admin credentials validation failed: admin email must not be empty")
	}

	if id.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(id.PasswordHash)); err != nil {
			return fmt.Errorf("admin credentials validation failed: password_hash is not a valid bcrypt hash")
		}
		return nil
	}

	pass := id.Password
	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: admin password must not be empty")
	}

	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: admin password must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}

	// Pattern checks run before the weak list so their messages stay specific.
	if isSimpleNumericPattern(pass) {
		return fmt.Errorf("admin credentials validation failed: admin password must not be a simple numeric pattern")
	}
	if isKeyboardPattern(pass) {
		return fmt.Errorf("admin credentials validation failed: admin password must not be a keyboard pattern")
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return fmt.Errorf("admin credentials validation failed: admin password must not be a weak password")
		}
		// catches "admin1234567890" style variations
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("admin credentials validation failed: admin password must not be based on common weak passwords")
		}
	}

	return nil
}

// isSimpleNumericPattern checks if the password is a simple numeric sequence.
// Examples: "111111111111", "123123123123"
func isSimpleNumericPattern(pass string) bool {
	if len(pass) < minPasswordLength {
		return false
	}

	// Check for repeated digits
	if isRepeatedChar(pass) {
		return true
	}

	// Check for simple sequences like "123456789012"
	hasOnlyDigits := true
	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			hasOnlyDigits = false
			break
		}
	}

	if !hasOnlyDigits {
		return false
	}

	// Check for ascending or descending sequences
	isAscending := true
	isDescending := true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		// Ascending: diff is 1 or -9 (wraps 9->0)
		if diff != 1 && diff != -9 {
			isAscending = false
		}
		// Descending: diff is -1 or 9 (wraps 0->9)
		if diff != -1 && diff != 9 {
			isDescending = false
		}
	}

	return isAscending || isDescending
}

// isRepeatedChar checks if the password consists of a single repeated character.
// Example: "aaaaaaaaaaaa"
func isRepeatedChar(pass string) bool {
	if len(pass) == 0 {
		return false
	}

	first := pass[0]
	for i := 1; i < len(pass); i++ {
		if pass[i] != first {
			return false
		}
	}
	return true
}

// isKeyboardPattern checks if the password is a keyboard pattern.
// Examples: "qwertyuiop", "asdfghjkl"
var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"qwerty",
	"asdfgh",
	"zxcvb",
}

func isKeyboardPattern(pass string) bool {
	lowerPass := strings.ToLower(pass)

	for _, pattern := range keyboardPatterns {
		if strings.Contains(lowerPass, pattern) {
			return true
		}
		// Check reverse pattern
		if strings.Contains(lowerPass, reverse(pattern)) {
			return true
		}
	}

	return false
}

// reverse returns the reversed string
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
