package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactive-core/host"
	"github.com/vango-dev/reactive-core/vtree"
)

func newKeyedDiffCmd() *cobra.Command {
	var sizes []int
	var iters int

	cmd := &cobra.Command{
		Use:   "keyed-diff",
		Short: "Benchmarks the keyed list diff against shuffled lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			runKeyedDiff(sizes, iters)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{10, 100, 1000, 10000}, "list sizes to benchmark")
	cmd.Flags().IntVar(&iters, "iters", 20, "shuffle-and-patch iterations per size")
	return cmd
}

func runKeyedDiff(sizes []int, iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Keyed List Diff")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, n := range sizes {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		h := &noopHost{}
		r := vtree.NewRenderer(h)
		container := "root"

		list := buildList(n)
		r.Render(list, container)

		for i := 0; i < iters; i++ {
			shuffled := shuffle(list)
			start := time.Now()
			r.Render(shuffled, container)
			tach.AddTime(time.Since(start))
			list = shuffled
		}

		calc := tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("keyed-diff: n=%d", n),
			calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max,
		})
	}

	tbl.Render()
}

func buildList(n int) *vtree.Node {
	items := make([]*vtree.Node, n)
	for i := 0; i < n; i++ {
		items[i] = vtree.Elem("li", nil, vtree.Textf("item %d", i)).Keyed(i)
	}
	return vtree.Elem("ul", nil, items...)
}

func shuffle(old *vtree.Node) *vtree.Node {
	items := make([]*vtree.Node, len(old.Children))
	for i, c := range old.Children {
		items[i] = vtree.Elem("li", nil, vtree.Textf("item %v", c.Key)).Keyed(c.Key)
	}
	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return vtree.Elem("ul", nil, items...)
}

// noopHost discards every host operation, so the benchmark measures the
// diff algorithm's own cost rather than any render target.
type noopHost struct{ seq int }

func (h *noopHost) PatchProp(el host.Node, key string, prev, next any, namespace string, parentComponent any) {
}
func (h *noopHost) Insert(node, parent, anchor host.Node) {}
func (h *noopHost) Remove(node host.Node)                 {}
func (h *noopHost) CreateElement(tag, namespace string, isCustomized bool, props map[string]any) host.Node {
	h.seq++
	return fmt.Sprintf("el-%d", h.seq)
}
func (h *noopHost) CreateText(s string) host.Node {
	h.seq++
	return fmt.Sprintf("text-%d", h.seq)
}
func (h *noopHost) CreateComment(s string) host.Node {
	h.seq++
	return fmt.Sprintf("comment-%d", h.seq)
}
func (h *noopHost) SetText(node host.Node, s string)        {}
func (h *noopHost) SetElementText(el host.Node, s string)    {}
func (h *noopHost) ParentNode(n host.Node) host.Node         { return nil }
func (h *noopHost) NextSibling(n host.Node) host.Node        { return nil }
