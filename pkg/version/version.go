package version

// Version represents the current version of querent
const Version = "0.3.1"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "querent version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}
