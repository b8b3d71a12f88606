package profile

import (
	"encoding/json"
	"strconv"
	"time"
)

// Bio fallbacks differ between the public viewer and the owner's editor.
// Both call sites are intentional; keep them distinct.
const (
	DefaultPublicBio = "hi"
	DefaultEditorBio = "Enter bio"
)

// Link is one entry in a profile's ordered link list.
type Link struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SocialLink is the canonical public shape of a social entry. Stored rows
// may carry extra fields from older clients; only these two survive
// normalization.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// View is the canonical shape every renderer consumes. Raw storage fields
// (account id included) never leave through it.
type View struct {
	Bio         string       `json:"bio"`
	Links       []Link       `json:"links"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

// Normalize converts a stored row's fields into the canonical view. It is
// total: malformed or missing values degrade to fallbackBio and empty
// slices, never an error.
func Normalize(bio string, linksJSON, socialJSON []byte, fallbackBio string) View {
	if bio == "" {
		bio = fallbackBio
	}
	return View{
		Bio:         bio,
		Links:       NormalizeLinks(linksJSON),
		SocialLinks: NormalizeSocial(socialJSON),
	}
}

// NormalizeLinks decodes a stored links column. Anything that is not an
// array of link objects yields an empty slice.
func NormalizeLinks(raw []byte) []Link {
	links := []Link{}
	if len(raw) == 0 {
		return links
	}
	var decoded []Link
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		return links
	}
	return decoded
}

// NormalizeSocial projects stored social entries down to platform and url,
// defaulting absent or wrong-typed values to "" and dropping every other
// key. Storage order is preserved; it determines icon display order.
func NormalizeSocial(raw []byte) []SocialLink {
	out := []SocialLink{}
	if len(raw) == 0 {
		return out
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		return out
	}
	for _, entry := range decoded {
		var s SocialLink
		if v, ok := entry["platform"].(string); ok {
			s.Platform = v
		}
		if v, ok := entry["url"].(string); ok {
			s.URL = v
		}
		out = append(out, s)
	}
	return out
}

// DedupeSocial enforces platform uniqueness within one profile. The first
// occurrence keeps its position, the last write wins on the url.
func DedupeSocial(in []SocialLink) []SocialLink {
	out := []SocialLink{}
	index := map[string]int{}
	for _, s := range in {
		if i, seen := index[s.Platform]; seen {
			out[i] = s
			continue
		}
		index[s.Platform] = len(out)
		out = append(out, s)
	}
	return out
}

// NewLinkID returns a timestamp-derived id, unique enough for list keys
// only (no cryptographic guarantee).
func NewLinkID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
