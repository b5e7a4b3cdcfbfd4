// SPDX-License-Identifier: EPL-2.0

// Command audconv inspects audio files and rewrites them as WAVE, AIFF or
// AU containers.
//
// Usage:
//
//	audconv [flags] <command> [args]
//
// Commands:
//
//	types    - list the container types that can be written
//	info     - print the sample format and length of a file
//	convert  - decode a file and write it as another container type
//
// A path of "-" reads from stdin or writes to stdout. Stdout is not
// seekable, so converting a source of unknown length to WAVE or AIFF on
// stdout fails; write to a file or use AU instead.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
