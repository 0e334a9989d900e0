package cli

import (
	"resuscan/internal/common"

	"github.com/spf13/cobra"
)

// addOutputFlags registers --output/--format and fills in the configured
// default format before the command runs.
func addOutputFlags(cmd *cobra.Command, out *common.CommandConfig) {
	cmd.Flags().StringVarP(&out.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&out.OutputFormat, "format", "", "Output format: json, text, or markdown")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if out.OutputFormat == "" {
			out.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(out.OutputFormat, cfg.App.SupportedFormats)
	}

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return common.NewOutputHandler(nil).GetSupportedFormats(), cobra.ShellCompDirectiveNoFileComp
	})
}

// addResumeFlags registers the --file/--text pair.
func addResumeFlags(cmd *cobra.Command, in *common.ResumeInput) {
	cmd.Flags().StringVarP(&in.File, "file", "f", "", "Resume file (txt, md, pdf, docx, html, or an image when OCR is configured)")
	cmd.Flags().StringVarP(&in.Text, "text", "t", "", "Resume text")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
}

// run executes op with the output handler bound to the command's stdout.
func run[Output any](cmd *cobra.Command, rt *components, out common.CommandConfig, op common.OperationFunc[Output]) error {
	handler := common.NewOutputHandlerWithWriter(rt.logger, cmd.OutOrStdout())
	return common.RunCommandTo(cmd.Context(), rt.logger, handler, out, cmd.Name(), op)
}
