// Package constants holds process-wide names shared by the CLI and config loader.
package constants

const (
	AppName      = "roxydental"
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "ROXYDENTAL"
)
