package web

import "embed"

// TemplatesFS embeds the default report template and logo.
//
//go:embed templates/*
var TemplatesFS embed.FS
