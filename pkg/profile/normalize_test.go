package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDropsExtraSocialFields(t *testing.T) {
	// older clients stored extra fields (icon handles etc.) on social entries
	raw := []byte(`[{"platform":"Github","url":"x","icon":{"weight":1},"order":3}]`)
	got := NormalizeSocial(raw)
	assert.Equal(t, []SocialLink{{Platform: "Github", URL: "x"}}, got)
}

func TestNormalizeSocialDefaultsMissingFields(t *testing.T) {
	raw := []byte(`[{"url":"https://a.com"},{"platform":"Email"},{"platform":7,"url":null}]`)
	got := NormalizeSocial(raw)
	assert.Equal(t, []SocialLink{
		{Platform: "", URL: "https://a.com"},
		{Platform: "Email", URL: ""},
		{Platform: "", URL: ""},
	}, got)
}

func TestNormalizeSocialPreservesOrder(t *testing.T) {
	raw := []byte(`[{"platform":"Twitter","url":"t"},{"platform":"Github","url":"g"}]`)
	got := NormalizeSocial(raw)
	assert.Equal(t, "Twitter", got[0].Platform)
	assert.Equal(t, "Github", got[1].Platform)
}

func TestNormalizeLinksNullAndMalformed(t *testing.T) {
	assert.Equal(t, []Link{}, NormalizeLinks(nil))
	assert.Equal(t, []Link{}, NormalizeLinks([]byte(`null`)))
	assert.Equal(t, []Link{}, NormalizeLinks([]byte(`{"not":"an array"}`)))
	assert.Equal(t, []Link{}, NormalizeLinks([]byte(`garbage`)))
}

func TestNormalizeLinksPassThrough(t *testing.T) {
	raw := []byte(`[{"id":"1","title":"A","url":"https://a.com"}]`)
	assert.Equal(t, []Link{{ID: "1", Title: "A", URL: "https://a.com"}}, NormalizeLinks(raw))
}

func TestNormalizeBioFallbacks(t *testing.T) {
	assert.Equal(t, "hello", Normalize("hello", nil, nil, DefaultPublicBio).Bio)
	assert.Equal(t, DefaultPublicBio, Normalize("", nil, nil, DefaultPublicBio).Bio)
	assert.Equal(t, DefaultEditorBio, Normalize("", nil, nil, DefaultEditorBio).Bio)
}

func TestNormalizeIsTotalOnGarbage(t *testing.T) {
	got := Normalize("", []byte(`{{{`), []byte(`12`), DefaultPublicBio)
	assert.Equal(t, View{Bio: DefaultPublicBio, Links: []Link{}, SocialLinks: []SocialLink{}}, got)
}

func TestDedupeSocialLastWriteWins(t *testing.T) {
	in := []SocialLink{
		{Platform: "Github", URL: "old"},
		{Platform: "Twitter", URL: "t"},
		{Platform: "Github", URL: "new"},
	}
	got := DedupeSocial(in)
	assert.Equal(t, []SocialLink{
		{Platform: "Github", URL: "new"},
		{Platform: "Twitter", URL: "t"},
	}, got)
}

func TestNewLinkID(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123", NewLinkID(at))
}
