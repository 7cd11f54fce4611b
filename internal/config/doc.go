// Package config provides layered configuration for bstr.
//
// Settings are resolved from, in increasing precedence:
//
//  1. Built-in defaults (Default)
//  2. A configuration file, TOML or YAML by extension
//  3. BSTR_* environment variables
//  4. Command-line flags, applied by the caller on the returned Config
//
// Example bstr.toml:
//
//	[logging]
//	level = "debug"
//
//	[output]
//	format = "json"   # text, json or yaml
//	pretty = true
//
//	[script]
//	timeout = "5s"
//
//	[script.watch]
//	debounce = "100ms"
//
//	[repl]
//	prompt = "bstr> "
//	history_size = 100
//
// Missing files are not an error; the defaults apply.
package config
