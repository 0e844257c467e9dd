package extupdate

// The version of the application, overwritten on release builds with -ldflags.
var Version = "0.1.0"
