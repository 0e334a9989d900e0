package cli

import (
	"fmt"
	"time"

	"resuscan/internal/errors"
	"resuscan/internal/server"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Issue an HS256 JWT signed with server.jwt.secret. Clients send it as
"Authorization: Bearer <token>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}

			jwtCfg := c.cfg.Server.JWT
			if jwtCfg.Secret == "" {
				return errors.NewConfigError(errors.ErrCodeInvalidConfig, "server.jwt.secret is not configured", nil)
			}
			if ttl <= 0 {
				ttl = jwtCfg.TTL
			}

			token, err := server.IssueToken(jwtCfg.Secret, jwtCfg.Issuer, subject, ttl)
			if err != nil {
				return err
			}
			c.logger.Debug("Issued API token", "subject", subject, "ttl", ttl.String())
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Token subject, usually the client name")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default from config)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
