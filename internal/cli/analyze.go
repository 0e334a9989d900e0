package cli

import (
	"context"
	"fmt"
	"path"

	"resuscan/internal/analysis"
	"resuscan/internal/bullets"
	"resuscan/internal/common"
	"resuscan/internal/errors"
	"resuscan/internal/queue"
	"resuscan/internal/types"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		in       common.ResumeInput
		s3Key    string
		jobTitle string
		enqueue  bool
		out      common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis: ATS score, skill gap, bullet rewrites and recommendations",
		Long: `Run every analysis on one resume. The resume can come from a local
file, inline text, or an object in the configured S3 bucket.

With --queue the job is published to the analysis queue for a worker to
pick up instead of being run locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if enqueue {
				return submitAnalysis(cmd, c, in, s3Key, jobTitle)
			}

			analyzer, err := c.analyzer()
			if err != nil {
				return err
			}

			c.logger.Info("Starting resume analysis", "job_title", jobTitle, "output_format", out.OutputFormat)
			return run(cmd, c, out, func(ctx context.Context) (types.ComprehensiveAnalysis, error) {
				if s3Key != "" {
					objects, err := c.objectStore(ctx)
					if err != nil {
						return types.ComprehensiveAnalysis{}, err
					}
					if objects == nil {
						return types.ComprehensiveAnalysis{}, errors.NewConfigError(errors.ErrCodeInvalidConfig,
							"object storage is not configured", nil)
					}
					obj, err := objects.Fetch(ctx, s3Key)
					if err != nil {
						return types.ComprehensiveAnalysis{}, err
					}
					return analyzer.Analyze(ctx, analysis.Request{
						FileName:    path.Base(s3Key),
						ContentType: obj.ContentType,
						Data:        obj.Data,
						JobTitle:    jobTitle,
					})
				}

				text, err := in.Load(ctx, c.extractor)
				if err != nil {
					return types.ComprehensiveAnalysis{}, err
				}
				return analyzer.AnalyzeText(ctx, text, jobTitle)
			})
		},
	}

	addResumeFlags(cmd, &in)
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "Object key of the resume in the configured bucket")
	cmd.Flags().StringVarP(&jobTitle, "job-title", "j", "", "Target job title")
	cmd.Flags().BoolVar(&enqueue, "queue", false, "Publish the job to the analysis queue instead of running it")
	cmd.MarkFlagsMutuallyExclusive("file", "s3-key")
	cmd.MarkFlagsMutuallyExclusive("text", "s3-key")
	_ = cmd.MarkFlagRequired("job-title")
	addOutputFlags(cmd, &out)
	return cmd
}

// submitAnalysis publishes a job. Local files are extracted first and sent
// as text since the worker cannot read them.
func submitAnalysis(cmd *cobra.Command, c *components, in common.ResumeInput, s3Key, jobTitle string) error {
	job := queue.Job{ID: uuid.NewString(), JobTitle: jobTitle, S3Key: s3Key}
	if s3Key == "" {
		if _, err := c.analyzer(); err != nil {
			return err
		}
		text, err := in.Load(cmd.Context(), c.extractor)
		if err != nil {
			return err
		}
		job.ResumeText = text
	}

	if err := queue.Submit(c.cfg.Queue, job); err != nil {
		return err
	}
	c.logger.Info("Submitted analysis job", "id", job.ID, "queue", c.cfg.Queue.JobsQueue)
	fmt.Fprintf(cmd.OutOrStdout(), "Submitted job %s, results are published with routing key %s\n",
		job.ID, queue.RoutingKey(job.ID))
	return nil
}

func newImproveCommand() *cobra.Command {
	var (
		items    []string
		in       common.ResumeInput
		jobTitle string
		out      common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "improve",
		Short: "Rewrite bullet points for a target role with AI",
		Long: `Rewrite bullet points so they lead with an action verb and show impact.
Pass bullets directly with --bullet, or a resume with --file or --text to
rewrite every bullet found in it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			analyzer, err := c.analyzer()
			if err != nil {
				return err
			}
			return run(cmd, c, out, func(ctx context.Context) (types.BulletImprovements, error) {
				if len(items) == 0 {
					text, err := in.Load(ctx, c.extractor)
					if err != nil {
						return types.BulletImprovements{}, err
					}
					items = bullets.Extract(text)
				}
				if len(items) == 0 {
					return types.BulletImprovements{}, errors.NewValidationError(errors.ErrCodeInvalidInput,
						"no bullet points found", nil)
				}
				return analyzer.ImproveBullets(ctx, items, jobTitle)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&items, "bullet", "b", nil, "Bullet point to rewrite (repeatable)")
	addResumeFlags(cmd, &in)
	cmd.Flags().StringVarP(&jobTitle, "job-title", "j", "", "Target job title")
	cmd.MarkFlagsMutuallyExclusive("bullet", "file")
	cmd.MarkFlagsMutuallyExclusive("bullet", "text")
	_ = cmd.MarkFlagRequired("job-title")
	addOutputFlags(cmd, &out)
	return cmd
}
