// Package files groups file-related functionality into sub-packages.
//
//   - filesystem: filesystem abstraction interfaces plus OS, in-memory
//     and embedded implementations
//   - scanner: tree walking, ignore handling and sidecar pairing
//   - loader: reading and validating discovered sidecars
//
// # Usage
//
//	import (
//	    "github.com/nomenworks/nomen/internal/files/loader"
//	    "github.com/nomenworks/nomen/internal/files/scanner"
//	)
//
//	treeScanner := scanner.NewScanner(tax)
//	scan, err := treeScanner.ScanTree("./docs")
//
//	records := loader.NewLoader(tax).LoadSidecars(scan)
package files
