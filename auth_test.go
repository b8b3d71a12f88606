package main

import (
	"errors"
	"testing"

	"linko/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySignupDuplicateMarkers(t *testing.T) {
	cases := []string{
		`ERROR: duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`,
		"user already exists",
		"this email is already registered",
		"username is taken",
		"UNIQUE CONSTRAINT failed",
	}
	for _, msg := range cases {
		aerr := classifySignup(signupOutcome{}, errors.New(msg))
		require.NotNil(t, aerr, msg)
		assert.Equal(t, CodeUsernameTaken, aerr.Code, msg)
	}
}

func TestClassifySignupEmptyIdentities(t *testing.T) {
	// success response with no identities means the backend already held an
	// unconfirmed account for this email
	out := signupOutcome{User: &models.User{ID: 1}, Identities: nil}
	aerr := classifySignup(out, nil)
	require.NotNil(t, aerr)
	assert.Equal(t, CodeUsernameTaken, aerr.Code)
}

func TestClassifySignupUnknown(t *testing.T) {
	aerr := classifySignup(signupOutcome{}, errors.New("connection refused"))
	require.NotNil(t, aerr)
	assert.Equal(t, CodeUnknown, aerr.Code)
	assert.Equal(t, msgUnknown, aerr.Message)
}

func TestClassifySignupSuccess(t *testing.T) {
	out := signupOutcome{User: &models.User{ID: 1}, Identities: []string{"a@gmail.com"}}
	assert.Nil(t, classifySignup(out, nil))
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.False(t, isDuplicateError(errors.New("connection reset")))
	assert.True(t, isDuplicateError(errors.New("pq: duplicate key value")))
}

func TestFixedUserSafeMessages(t *testing.T) {
	assert.Equal(t, "username and password is wrong please try again", errInvalidCredentials().Message)
	assert.Equal(t, "please refresh the website", errUnknown().Message)
	assert.Equal(t, "this username is already occupied", errUsernameTaken().Message)
}
