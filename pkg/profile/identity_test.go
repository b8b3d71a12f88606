package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUsername(t *testing.T) {
	assert.Equal(t, "alice", DeriveUsername("alice@gmail.com"))
	assert.Equal(t, "alice", DeriveUsername("alice@anything.else"))
	assert.Equal(t, "", DeriveUsername("no-at-sign"))
	assert.Equal(t, "", DeriveUsername("@gmail.com"))
	// only the first '@' splits
	assert.Equal(t, "a", DeriveUsername("a@b@c"))
}

func TestSyntheticEmailRoundTrip(t *testing.T) {
	assert.Equal(t, "bob@gmail.com", SyntheticEmail("bob"))
	assert.Equal(t, "bob", DeriveUsername(SyntheticEmail("bob")))
}

func TestKnownPlatform(t *testing.T) {
	assert.True(t, KnownPlatform("Github"))
	assert.True(t, KnownPlatform("Any URL"))
	assert.False(t, KnownPlatform("github"))
	assert.False(t, KnownPlatform("Myspace"))
	assert.False(t, KnownPlatform(""))
}
