// Command reactive-bench measures the reactive engine under the
// propagate-chain shape signalparty's own benchmark command uses (a
// width×height grid of computed chains feeding a single effect each) and
// exercises the keyed-diff patch engine against list shuffles, reporting
// latency distributions via tachymeter and go-pretty tables.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "reactive-bench",
		Short: "Benchmarks the reactive engine and vtree patch engine",
	}
	root.AddCommand(newPropagateCmd())
	root.AddCommand(newKeyedDiffCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.SetFlags(0)
		os.Exit(1)
	}
}
