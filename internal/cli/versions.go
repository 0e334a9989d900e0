package cli

import (
	"context"
	"fmt"

	"resuscan/internal/common"
	"resuscan/internal/types"

	"github.com/spf13/cobra"
)

func newVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage saved resume versions",
	}
	cmd.AddCommand(
		newVersionsSaveCommand(),
		newVersionsListCommand(),
		newVersionsGetCommand(),
		newVersionsDeleteCommand(),
	)
	return cmd
}

func newVersionsSaveCommand() *cobra.Command {
	var (
		name     string
		jobTitle string
		dataFile string
		out      common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a structured resume as a new version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			resume, _, err := loadResume(ctx, c, dataFile, "")
			if err != nil {
				return err
			}
			st, err := c.versionStore(ctx)
			if err != nil {
				return err
			}
			return run(cmd, c, out, func(ctx context.Context) (types.Version, error) {
				return st.Save(ctx, name, jobTitle, resume)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Version name")
	cmd.Flags().StringVarP(&jobTitle, "job-title", "j", "", "Job title this version targets")
	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "Structured resume JSON file")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("data")
	addOutputFlags(cmd, &out)
	return cmd
}

func newVersionsListCommand() *cobra.Command {
	var out common.CommandConfig

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved versions, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := c.versionStore(cmd.Context())
			if err != nil {
				return err
			}
			return run(cmd, c, out, func(ctx context.Context) (types.VersionList, error) {
				versions, err := st.List(ctx)
				if err != nil {
					return types.VersionList{}, err
				}
				return types.VersionList{Versions: versions}, nil
			})
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}

func newVersionsGetCommand() *cobra.Command {
	var out common.CommandConfig

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a saved version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := c.versionStore(cmd.Context())
			if err != nil {
				return err
			}
			return run(cmd, c, out, func(ctx context.Context) (types.Version, error) {
				return st.Get(ctx, args[0])
			})
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}

func newVersionsDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := c.versionStore(cmd.Context())
			if err != nil {
				return err
			}
			name, err := st.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.logger.Info("Deleted resume version", "id", args[0], "name", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted version %s (%s)\n", args[0], name)
			return nil
		},
	}
	return cmd
}
