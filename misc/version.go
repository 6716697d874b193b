// Package misc holds build time information about the program.
package misc

// Set by linker flags at build time.
var (
	appName = "c4ddev"
	version = "0.0.0-dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

// GetVersion returns program version without leading "v".
func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
