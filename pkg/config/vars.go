package config

var (
	// AppName identifies the library in logs and storage key prefixes.
	AppName = "gnmodel"
)
