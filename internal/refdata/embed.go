package refdata

import (
	"embed"
	"io/fs"
)

//go:embed catalogs
var embedded embed.FS

// Embedded returns the default catalogs compiled into the binary. They are
// used when no data directory is configured.
func Embedded() *Catalogs {
	sub, err := fs.Sub(embedded, "catalogs")
	if err != nil {
		panic(err)
	}
	return mustLoad(sub)
}
