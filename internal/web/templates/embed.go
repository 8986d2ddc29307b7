// Package templates holds the embedded HTML pages.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
