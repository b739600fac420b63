package config

import "fmt"

// The following vars are automatically injected via -ldflags.
// No need to change them here.
// https://www.digitalocean.com/community/tutorials/using-ldflags-to-set-version-information-for-go-applications
var (
	ModuleName = "roy-dex"
	Commit     = "< 40 chars git commit hash via ldflags >"
	BuildDate  = "< YYYY-MM-DDTHH:MM:SS+ZZ:ZZ via ldflags >"
)

// GetFormattedBuildArgs returns string representation of buildsargs set via ldflags "<ModuleName> @ <Commit> (<BuildDate>)"
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
