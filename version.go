package ntm

// Version is the release of the ntm module, overridden at build time with
// -ldflags "-X github.com/aretw0/ntm.Version=...".
var Version = "0.1.0-dev"
