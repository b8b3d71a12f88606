package main

import (
	"errors"
	"log"
	"strings"

	"linko/models"
	"linko/pkg/profile"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The auth bridge. Credentials are keyed on a synthetic
// <username>@domain email; the email never leaves this file except as a
// stored column, and downstream code only ever sees the derived local part.

// signupOutcome mirrors what the credential backend reports for a signup
// call. Identities is empty when the backend already held an unconfirmed
// account for the email; that quirk signals a taken username just as a
// conflict error does.
type signupOutcome struct {
	User       *models.User
	Identities []string
}

// Markers seen in duplicate-key failures across backends. Structured
// conflict detection comes first; this list is the compatibility shim.
var duplicateMarkers = []string{
	"duplicate key",
	"unique constraint",
	"already exists",
	"already registered",
	"taken",
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	for _, m := range duplicateMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// classifySignup maps a backend signup result onto the error taxonomy.
// Both conflict signals collapse to USERNAME_TAKEN: a duplicate-marker
// error, or a success response with an empty identity list. Unmatched
// error shapes are logged before degrading to UNKNOWN.
func classifySignup(out signupOutcome, err error) *apiError {
	if err != nil {
		if isDuplicateError(err) {
			return errUsernameTaken()
		}
		log.Printf("signup: unclassified backend error: %v", err)
		return errUnknown()
	}
	if len(out.Identities) == 0 {
		return errUsernameTaken()
	}
	return nil
}

// Signup provisions a credential account for username. The returned error
// is always from the taxonomy.
func Signup(username, password, displayName string) (*models.User, *apiError) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errBadRequest("username required")
	}
	if len(password) < 6 { // basic password policy
		return nil, errBadRequest("password too short (min 6)")
	}
	out, err := createAccount(username, password, displayName)
	if aerr := classifySignup(out, err); aerr != nil {
		return nil, aerr
	}
	return out.User, nil
}

// createAccount is the backend credential call. An existing row for the
// email is reported as a success with no identities (pre-check); a create
// race surfaces as the storage layer's duplicate-key error instead.
func createAccount(username, password, displayName string) (signupOutcome, error) {
	email := profile.SyntheticEmail(username)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return signupOutcome{User: &existing}, nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return signupOutcome{}, err
	}
	user := models.User{Email: email, HashedPassword: hashedPassword, DisplayName: strings.TrimSpace(displayName)}
	if err := db.Create(&user).Error; err != nil {
		return signupOutcome{}, err
	}
	return signupOutcome{User: &user, Identities: []string{email}}, nil
}

// Login verifies username/password and returns the account. Any failure to
// match is INVALID_CREDENTIALS; storage failures degrade to UNKNOWN.
func Login(username, password string) (*models.User, *apiError) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errInvalidCredentials()
	}
	email := profile.SyntheticEmail(username)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials()
		}
		log.Printf("login: backend lookup failed: %v", err)
		return nil, errUnknown()
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, errInvalidCredentials()
	}
	return &user, nil
}
