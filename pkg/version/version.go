package version

// Version is the app-global version string, substituted during build
var Version = "UNKNOWN"

// AppName is a name of the app. Used to resolve config files
// and as a prefix of published event routing keys
var AppName = "finance-tracker"

// GitHash injected build time (see Makefile)
var GitHash = "TBD"

// GitRef injected build time (see Makefile)
var GitRef = "TBD"

// UserAgent is sent by the API client
func UserAgent() string {
	return AppName + "/" + Version + " (" + GitRef + "@" + GitHash + ")"
}
