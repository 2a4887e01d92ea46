// Package docs bundles the long-form Markdown guides shown by 'devnest docs'.
package docs

import "embed"

// FS holds index.yaml and the guide and reference topics it lists.
//
//go:embed index.yaml guide reference
var FS embed.FS
