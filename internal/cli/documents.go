package cli

import (
	"context"
	"fmt"
	"time"

	"resuscan/internal/common"
	"resuscan/internal/errors"
	"resuscan/internal/render"
	"resuscan/internal/types"

	"github.com/spf13/cobra"
)

func newTemplatesCommand() *cobra.Command {
	var out common.CommandConfig

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List resume rendering templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			return run(cmd, c, out, func(context.Context) (types.TemplateList, error) {
				return types.TemplateList{Templates: render.List()}, nil
			})
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}

func newRenderCommand() *cobra.Command {
	var (
		dataFile  string
		versionID string
		template  string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a structured resume to PDF",
		Long: `Render a structured resume to PDF with headless Chrome. The resume comes
from a JSON file (--data) or a saved version (--version). When an S3 bucket
is configured the document is uploaded as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			resume, name, err := loadResume(ctx, c, dataFile, versionID)
			if err != nil {
				return err
			}
			if template == "" {
				template = c.cfg.Render.DefaultTemplate
			}

			renderer, err := c.renderer(ctx)
			if err != nil {
				return err
			}
			doc, err := renderer.RenderDocument(ctx, resume, template)
			if err != nil {
				return err
			}

			if output == "" {
				output = render.FileName(name, time.Now())
			}
			if err := common.NewOutputHandler(c.logger).WriteDocument(output, doc.Data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s with the %s template\n", output, doc.Template)
			if doc.Key != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded to s3://%s/%s\n", c.objects.Bucket(), doc.Key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "Structured resume JSON file")
	cmd.Flags().StringVar(&versionID, "version", "", "Saved version id to render")
	cmd.Flags().StringVar(&template, "template", "", "Template id (see 'resuscan templates')")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF path (default: <name>_<timestamp>.pdf)")
	cmd.MarkFlagsMutuallyExclusive("data", "version")
	cmd.MarkFlagsOneRequired("data", "version")
	return cmd
}

// loadResume reads a structured resume from a file or the version store and
// returns it with the name used for the download file.
func loadResume(ctx context.Context, c *components, dataFile, versionID string) (types.Resume, string, error) {
	if versionID != "" {
		st, err := c.versionStore(ctx)
		if err != nil {
			return types.Resume{}, "", err
		}
		v, err := st.Get(ctx, versionID)
		if err != nil {
			return types.Resume{}, "", err
		}
		return v.ResumeData, v.Name, nil
	}

	var resume types.Resume
	if err := common.NewFileProcessor(c.logger).ReadJSON(dataFile, &resume); err != nil {
		return types.Resume{}, "", err
	}
	if resume.Name == "" {
		return types.Resume{}, "", errors.NewValidationError(errors.ErrCodeInvalidInput, "resume name is required", nil)
	}
	return resume, resume.Name, nil
}
