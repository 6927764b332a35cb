package version

// Version is overridden at build time with -ldflags "-X work-manifest/core/internal/version.Version=...".
var Version = "dev"
