// pssraw - PSS/E RAW Case Decoder
//
// pssraw decodes PSS/E RAW power-flow case files of revisions 29 through 36
// into typed network records and reports what was lost on the way.
package main

import (
	"os"

	"github.com/ccollicutt/pssraw/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
