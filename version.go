package main

// Set with -ldflags "-X main.Version=... -X main.BuildDate=..."
var (
	Version   = "dev"
	BuildDate = "unknown"
)
