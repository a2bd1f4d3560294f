package version

// Version is the archguard release version.
// Overridden at build time via -ldflags "-X archguard/internal/version.Version=...".
var Version = "0.3.0"
