package profile

import "strings"

// SyntheticDomain is the fixed domain appended to usernames to satisfy the
// email-based credential model. It carries no meaning beyond that; only the
// local part is ever used downstream.
const SyntheticDomain = "gmail.com"

// SyntheticEmail builds the credential email for a username.
func SyntheticEmail(username string) string {
	return username + "@" + SyntheticDomain
}

// DeriveUsername returns the local part of an email-shaped string, or ""
// when the string contains no '@'. No legality checks here; the credential
// call is the actual gate.
func DeriveUsername(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return ""
}
