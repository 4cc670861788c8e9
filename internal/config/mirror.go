package config

const (
	envMirrorURL = "MIRROR_URL"
)

// MirrorConfig controls the static dataset mirror, a raw JSON snapshot hosted
// alongside the site for when both live APIs are down.
type MirrorConfig struct {
	URL string
}

func loadMirror() MirrorConfig {
	return MirrorConfig{
		URL: envOrDefault(envMirrorURL, ""),
	}
}
