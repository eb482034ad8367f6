package footprint

import "embed"

// ContentFS holds the tips, reward and challenge catalogs under content/.
//
//go:embed content
var ContentFS embed.FS
