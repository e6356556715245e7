package cli

import (
	"github.com/spf13/cobra"

	"github.com/jverdier/coursemap/pkg/document"
)

// newSanitizeCmd creates the sanitize command. It runs the document repair
// pass and reports everything it had to fix: regenerated ids, demoted
// duplicate roots, and pruned edges.
func newSanitizeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sanitize <file>",
		Short: "Repair a graph document and report what was fixed",
		Long: `Repair a graph document: regenerate invalid ids, demote duplicate root
nodes, drop unrecognized fields, and prune edges whose endpoints are missing.
Sanitization is idempotent; running it on a clean document changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSanitize(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to rewriting the input)")

	return cmd
}

func runSanitize(cmd *cobra.Command, input, output string) error {
	logger := loggerFromContext(cmd.Context())

	raw, err := readDocument(input)
	if err != nil {
		return err
	}

	doc, st := document.Sanitize(raw)
	logger.Debugf("Sanitized %s: %d nodes, %d edges", doc.ID, len(doc.Nodes), len(doc.Edges))

	if st.Clean() {
		printSuccess("Document is clean")
	} else {
		printWarning("Document needed repair")
		if st.NodeIDsRegenerated > 0 {
			printDetail("%d node id(s) regenerated", st.NodeIDsRegenerated)
		}
		if st.EdgeIDsRegenerated > 0 {
			printDetail("%d edge id(s) regenerated", st.EdgeIDsRegenerated)
		}
		for _, e := range st.Pruned {
			printDetail("pruned edge %s → %s", e.Source, e.Target)
		}
	}
	printGraphLine(len(doc.Nodes), len(doc.Edges), st.PrunedEdgeCount())

	path, err := writeDocument(doc, input, output)
	if err != nil {
		return err
	}
	printFile(path)
	printNextStep("Inspect the path", "coursemap stats "+path)
	return nil
}
