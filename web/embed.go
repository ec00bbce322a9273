// Package web holds the single-page UI served at the root path.
package web

import _ "embed"

// Index is the single-page application.
//
//go:embed index.html
var Index []byte
