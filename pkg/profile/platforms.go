package profile

// Platforms is the fixed set of social platform names. The name doubles as
// storage key and icon lookup on the client, so order matters for pickers.
var Platforms = []string{
	"Github",
	"Dribbble",
	"Linkedin",
	"Instagram",
	"Facebook",
	"Any URL",
	"Codepen",
	"Email",
	"Pinterest",
	"Snapchat",
	"Twitter",
	"Youtube",
}

var platformSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Platforms))
	for _, p := range Platforms {
		m[p] = struct{}{}
	}
	return m
}()

// KnownPlatform reports whether name is in the fixed platform set.
func KnownPlatform(name string) bool {
	_, ok := platformSet[name]
	return ok
}
