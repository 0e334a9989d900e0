package cli

import (
	"context"
	"fmt"

	"resuscan/internal/common"
	"resuscan/internal/types"

	"github.com/spf13/cobra"
)

func newScoreCommand() *cobra.Command {
	var (
		in       common.ResumeInput
		jobTitle string
		out      common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume for ATS compatibility",
		Long: `Score a resume against a target job title. The overall score weights
keyword coverage (40%), formatting (30%), readability (20%) and section
structure (10%).`,
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
			return run(cmd, c, out, func(ctx context.Context) (types.AtsScore, error) {
				text, err := in.Load(ctx, c.extractor)
				if err != nil {
					return types.AtsScore{}, err
				}
				return analyzer.ScoreATS(ctx, text, jobTitle)
			})
		},
	}

	addResumeFlags(cmd, &in)
	cmd.Flags().StringVarP(&jobTitle, "job-title", "j", "", "Target job title")
	_ = cmd.MarkFlagRequired("job-title")
	addOutputFlags(cmd, &out)
	return cmd
}

func newSkillGapCommand() *cobra.Command {
	var (
		in       common.ResumeInput
		jobTitle string
		out      common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "skillgap",
		Short: "Compare resume skills with the skills a role requires",
		Args:  cobra.NoArgs,
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
			return run(cmd, c, out, func(ctx context.Context) (types.SkillGapResult, error) {
				text, err := in.Load(ctx, c.extractor)
				if err != nil {
					return types.SkillGapResult{}, err
				}
				return analyzer.SkillGap(text, jobTitle)
			})
		},
	}

	addResumeFlags(cmd, &in)
	cmd.Flags().StringVarP(&jobTitle, "job-title", "j", "", "Target job title")
	_ = cmd.MarkFlagRequired("job-title")
	addOutputFlags(cmd, &out)
	return cmd
}

func newTipsCommand() *cobra.Command {
	var (
		scores types.ComponentScores
		out    common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "tips",
		Short: "List improvement tips for a set of component scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for name, v := range map[string]float64{
				"keyword-score":     scores.Keyword,
				"format-score":      scores.Format,
				"readability-score": scores.Readability,
				"structure-score":   scores.Structure,
			} {
				if v < 0 || v > 100 {
					return fmt.Errorf("--%s must be between 0 and 100, got %g", name, v)
				}
			}

			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			analyzer, err := c.analyzer()
			if err != nil {
				return err
			}
			return run(cmd, c, out, func(context.Context) (types.TipList, error) {
				return analyzer.Tips(scores), nil
			})
		},
	}

	cmd.Flags().Float64Var(&scores.Keyword, "keyword-score", 0, "Keyword score (0-100)")
	cmd.Flags().Float64Var(&scores.Format, "format-score", 0, "Format score (0-100)")
	cmd.Flags().Float64Var(&scores.Readability, "readability-score", 0, "Readability score (0-100)")
	cmd.Flags().Float64Var(&scores.Structure, "structure-score", 0, "Structure score (0-100)")
	addOutputFlags(cmd, &out)
	return cmd
}

func newRecommendCommand() *cobra.Command {
	var (
		skills   []string
		jobTitle string
		out      common.CommandConfig
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend courses and projects for missing skills",
		Args:  cobra.NoArgs,
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
			return run(cmd, c, out, func(context.Context) (types.Recommendations, error) {
				return analyzer.Recommend(skills, jobTitle), nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&skills, "skills", "s", nil, "Missing skills, comma separated")
	cmd.Flags().StringVarP(&jobTitle, "job-title", "j", "", "Target job title, used for fallback recommendations")
	_ = cmd.MarkFlagRequired("skills")
	addOutputFlags(cmd, &out)
	return cmd
}
