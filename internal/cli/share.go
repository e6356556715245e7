package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jverdier/coursemap/pkg/share"
)

// newShareCmd creates the share command group. All subcommands operate on the
// backends configured in coursemap.toml, so links issued here resolve on a
// server running against the same config.
func newShareCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Issue, resolve, and revoke share links",
		Long: `Manage expiring share links for stored documents. A document has at most
one active link: issuing a new one invalidates the previous link.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (coursemap.toml if present)")

	cmd.AddCommand(newShareIssueCmd(&configPath))
	cmd.AddCommand(newShareResolveCmd(&configPath))
	cmd.AddCommand(newShareRevokeCmd(&configPath))

	return cmd
}

func newShareIssueCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <document-id>",
		Short: "Issue a share link for a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShareIssue(cmd, *configPath, args[0])
		},
	}
}

func newShareResolveCmd(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resolve <token>",
		Short: "Resolve a share link to its document snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShareResolve(cmd, *configPath, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func newShareRevokeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <document-id>",
		Short: "Revoke the active share link of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShareRevoke(cmd, *configPath, args[0])
		},
	}
}

func runShareIssue(cmd *cobra.Command, configPath, docID string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	shareStore, err := openShareStore(ctx, cfg.Shares)
	if err != nil {
		return err
	}
	defer shareStore.Close()

	mgr, err := newShareManager(cfg, shareStore)
	if err != nil {
		return err
	}

	doc, err := st.Load(ctx, docID)
	if err != nil {
		return fmt.Errorf("load document %s: %w", docID, err)
	}

	link, err := mgr.Issue(ctx, docID, doc)
	if err != nil {
		return fmt.Errorf("issue share: %w", err)
	}

	printSuccess("Share link issued")
	printKeyValue("Token", link.Token)
	printKeyValue("URL", StyleLink.Render(link.URL))
	printKeyValue("Expires", link.ExpiresAt.Format("2006-01-02 15:04 MST"))
	return nil
}

func runShareResolve(cmd *cobra.Command, configPath, token, output string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	shareStore, err := openShareStore(ctx, cfg.Shares)
	if err != nil {
		return err
	}
	defer shareStore.Close()

	mgr, err := newShareManager(cfg, shareStore)
	if err != nil {
		return err
	}

	snapshot, err := mgr.Resolve(ctx, token)
	switch {
	case errors.Is(err, share.ErrExpired):
		printError("Share link has expired")
		return err
	case errors.Is(err, share.ErrNotFound):
		printError("Share link not found")
		return err
	case err != nil:
		return fmt.Errorf("resolve share: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Resolved snapshot %s", StyleHighlight.Render(snapshot.ID))
	printFile(output)
	return nil
}

func runShareRevoke(cmd *cobra.Command, configPath, docID string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	shareStore, err := openShareStore(ctx, cfg.Shares)
	if err != nil {
		return err
	}
	defer shareStore.Close()

	mgr, err := newShareManager(cfg, shareStore)
	if err != nil {
		return err
	}

	if err := mgr.Revoke(ctx, docID); err != nil {
		return fmt.Errorf("revoke share: %w", err)
	}
	printSuccess("Share link revoked for %s", StyleHighlight.Render(docID))
	return nil
}
