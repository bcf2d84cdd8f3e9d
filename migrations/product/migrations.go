// Package product embeds the product schema migrations.
package product

import "embed"

// FS holds the goose *.sql files for the products table.
//
//go:embed *.sql
var FS embed.FS
