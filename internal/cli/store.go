package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
	"github.com/panekit/panekit/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage documents in the keyed layout store",
	}

	cmd.PersistentFlags().StringVar(&backend, "store", "", "store backend: file, memory, redis, mongo, null")

	cmd.AddCommand(c.storeListCommand(&backend))
	cmd.AddCommand(c.storeGetCommand(&backend))
	cmd.AddCommand(c.storePutCommand(&backend))
	cmd.AddCommand(c.storeDeleteCommand(&backend))
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored layout documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer st.Close()

			keys, err := st.List(ctx)
			if err != nil {
				return fmt.Errorf("list store: %w", err)
			}
			if len(keys) == 0 {
				printInfo("Store is empty")
				return nil
			}

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				data, found, err := st.Get(ctx, key)
				if err != nil || !found {
					rows = append(rows, []string{key, "?", "?", "?"})
					continue
				}
				regions, canvas := "?", "?"
				if doc, err := layout.ReadJSON(bytes.NewReader(data)); err == nil {
					regions = fmt.Sprintf("%d", doc.Regions.Len())
					canvas = fmt.Sprintf("%dx%d", doc.Canvas.W, doc.Canvas.H)
				}
				rows = append(rows, []string{key, regions, canvas, store.Hash(data)[:12]})
			}
			renderTable([]string{"Key", "Regions", "Canvas", "Hash"}, rows)
			return nil
		},
	}
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand(backend *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print a stored layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer st.Close()

			data, found, err := st.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("load %q: %w", args[0], err)
			}
			if !found {
				return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", args[0])
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printSuccess("Document written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

// storePutCommand creates the "store put" subcommand.
func (c *CLI) storePutCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "put [key] [layout.json]",
		Short: "Validate a layout document and save it under a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key, input := args[0], args[1]

			doc, err := c.loadDocument(input)
			if err != nil {
				return fmt.Errorf("load layout %s: %w", input, err)
			}
			if verrs := layout.ValidateDocument(doc, geom.Size{}); len(verrs) > 0 {
				printError("Layout is invalid, not saved")
				return verrs
			}

			st, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer st.Close()

			var buf bytes.Buffer
			if err := layout.WriteJSON(doc, &buf); err != nil {
				return err
			}
			if err := st.Set(ctx, key, buf.Bytes()); err != nil {
				return fmt.Errorf("save %q: %w", key, err)
			}

			printSuccess("Saved %q", key)
			printDetail("%d regions, hash %s", doc.Regions.Len(), store.Hash(buf.Bytes())[:12])
			printNextStep("Edit", fmt.Sprintf("panekit edit %s --key %s", input, key))
			return nil
		},
		Args: cobra.ExactArgs(2),
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a stored layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete %q: %w", args[0], err)
			}
			printSuccess("Deleted %q", args[0])
			return nil
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file backend's storage directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewFileStore(c.Config.Store.Dir)
			if err != nil {
				return fmt.Errorf("open file store: %w", err)
			}
			defer st.Close()
			fmt.Println(st.Path())
			return nil
		},
	}
}
