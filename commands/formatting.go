package commands

import (
	"io"
	"strconv"

	"github.com/activecm/wfpreprocess/pkg/features"

	"github.com/olekukonko/tablewriter"
)

// helper function for formatting integers
func i(i int) string {
	return strconv.Itoa(i)
}

// showPositionsTable renders block offsets with the range each block covers
func showPositionsTable(w io.Writer, positions features.Positions) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Block", "Start", "End", "Length"})

	start := 0
	for _, p := range positions {
		table.Append([]string{p.Name, i(start), i(p.Offset), i(p.Offset - start)})
		start = p.Offset
	}
	table.Render()
}
