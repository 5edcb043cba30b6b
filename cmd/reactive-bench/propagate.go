package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactive-core/reactive"
)

func newPropagateCmd() *cobra.Command {
	var widths, heights []int
	var iters int

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Benchmarks trigger propagation through a grid of derived chains",
		RunE: func(cmd *cobra.Command, args []string) error {
			runPropagate(widths, heights, iters)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&widths, "widths", []int{1, 10, 100, 1000}, "chain widths to benchmark")
	cmd.Flags().IntSliceVar(&heights, "heights", []int{1, 10, 100, 1000}, "chain heights (derived layers) to benchmark")
	cmd.Flags().IntVar(&iters, "iters", 100, "write iterations per (width,height) cell")
	return cmd
}

// runPropagate builds, for each (width, height) pair, `width` independent
// chains of `height` Derived layers stacked on a shared Signal, each
// chain terminating in an Effect, then times repeated writes to the
// source Signal — the same shape signalparty's own benchmark command
// uses for the alien-signals reactive system.
func runPropagate(widths, heights []int, iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Reactive Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, h := range heights {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			reactive.CloseWorld()
			src := reactive.NewSignal(1)

			for i := 0; i < w; i++ {
				var last func() int
				last = src.Get
				for j := 0; j < h; j++ {
					prev := last
					d := reactive.CreateDerived(func(int) int { return prev() + 1 })
					last = d.Get
				}
				read := last
				reactive.CreateEffect(func() reactive.Cleanup {
					read()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max,
			})
		}
	}

	tbl.Render()
}
