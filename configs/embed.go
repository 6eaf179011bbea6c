// Package configs provides the embedded configuration template for
// launchindex.
//
// The template is embedded at build time with go:embed so it ships in
// every distribution. 'launchindex config init' writes it to the data
// directory as a starting point.
package configs

import _ "embed"

// ExampleConfig is the annotated default configuration template.
//
//go:embed config.example.yaml
var ExampleConfig string
