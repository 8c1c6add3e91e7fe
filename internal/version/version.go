package version

// Version contains the application version information.
// Set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/vault2hugo/internal/version.Version=v1.0.0".
var Version = "dev"
