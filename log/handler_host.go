//go:build !wasip1

package log

import (
	"fmt"
	"os"
)

// sendToHost writes the encoded record to stderr in native builds, where
// there is no host to forward it to.
func sendToHost(data []byte) {
	fmt.Fprintf(os.Stderr, "%s\n", data)
}
