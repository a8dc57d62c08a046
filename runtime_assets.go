package cardioform

import (
	"io/fs"

	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and the browser script that
// classifies fields as they are typed.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cardioform.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
