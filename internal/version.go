package internal

// Version information of this build, overridable with -ldflags "-X".
var (
	Version = "0.1.0"
	Commit  string
)
