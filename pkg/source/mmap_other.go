//go:build !unix

package source

import "os"

func mapFile(*os.File, int) ([]byte, func() error, error) {
	return nil, nil, errNoMmap
}
