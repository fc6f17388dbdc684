package version

// Version is the CLI version, overridable at build time with
// -ldflags "-X .../internal/version.Version=...".
var Version = "0.3.0"
