// Package embedded links the built-in format handlers into the binary.
// Importing it for side effects runs every adapter's init function, which
// registers the handler with the aio registry. A program that wants file
// I/O imports this package once, usually from main:
//
//	_ "github.com/brigitte-bigi/annago/internal/embedded"
package embedded

import (
	"github.com/brigitte-bigi/annago/core/aio"

	_ "github.com/brigitte-bigi/annago/internal/formats/csv"
	_ "github.com/brigitte-bigi/annago/internal/formats/rawtxt"
	_ "github.com/brigitte-bigi/annago/internal/formats/sqlite"
	_ "github.com/brigitte-bigi/annago/internal/formats/textgrid"
	_ "github.com/brigitte-bigi/annago/internal/formats/xra"
)

// IsInitialized reports whether the handler registry is populated.
func IsInitialized() bool {
	return len(aio.Names()) > 0
}

// HandlerCount returns the number of registered format handlers.
func HandlerCount() int {
	return len(aio.Names())
}
