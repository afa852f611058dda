// Package web holds the dashboard page served by the dashboard handler.
package web

import "embed"

//go:embed index.html app.js styles.css
var Content embed.FS
