package httpapi

import (
	"net/mail"
	"strings"
)

const minPasswordLen = 8

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

func registerFieldErrors(email, fullName, password string) map[string]string {
	fields := map[string]string{}
	if !validEmail(email) {
		fields["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(fullName) == "" {
		fields["full_name"] = "must not be empty"
	}
	if len(password) < minPasswordLen {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
