// Package web embeds the single-page browser UI served at the root route.
package web

import _ "embed"

// IndexHTML is the grade calculator page: an assessment form that posts to the
// students API and renders the predicted grade, progress and stored records.
//
//go:embed index.html
var IndexHTML string
