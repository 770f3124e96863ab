package scaffold

import "embed"

//go:embed all:scaffolds
var scaffoldFS embed.FS
