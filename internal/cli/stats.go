package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/stats"
)

// newStatsCmd creates the stats command. Metrics follow directed reachability
// from the start node, so orphaned modules do not count.
func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Compute path statistics for a graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0])
		},
	}

	return cmd
}

func runStats(cmd *cobra.Command, input string) error {
	logger := loggerFromContext(cmd.Context())

	raw, err := readDocument(input)
	if err != nil {
		return err
	}
	doc, st := document.Sanitize(raw)
	if !st.Clean() {
		logger.Warnf("Document needed repair before analysis (%d edges pruned)", st.PrunedEdgeCount())
	}

	startID := document.StartNodeID
	if root, ok := doc.Root(); ok {
		startID = root.ID
	}
	sum := stats.Compute(doc, startID)

	orphans := 0
	for _, n := range doc.Nodes {
		if !sum.Connected[n.ID] {
			orphans++
		}
	}

	title := doc.Title
	if title == "" {
		title = doc.ID
	}
	printInfo("Path statistics for %s", StyleHighlight.Render(title))
	printNewline()
	printKeyValue("Modules", fmt.Sprintf("%d", sum.ModuleCount))
	printKeyValue("Duration", sum.TotalDuration.String())
	printKeyValue("Families", joinOrDash(sum.Families))
	printKeyValue("Classification", sum.Classification)
	if orphans > 0 {
		printNewline()
		printWarning("%d node(s) not reachable from the start node", orphans)
	}
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}
