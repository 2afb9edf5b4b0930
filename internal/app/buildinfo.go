package app

// Build information set with -ldflags "-X". The defaults describe a local
// development build.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)
