package cli

import (
	"resuscan/internal/queue"

	"github.com/spf13/cobra"
)

func newWorkerCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis jobs from the message queue",
		Long: `Consume analysis jobs from queue.jobsQueue and publish each result to
queue.resultsExchange with routing key analysis.<job id>. Jobs name their
resume either as inline text or as an object key in the configured bucket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if workers > 0 {
				c.cfg.Queue.Workers = workers
			}
			if err := c.enableObservability(); err != nil {
				return err
			}

			ctx := cmd.Context()
			analyzer, err := c.analyzer()
			if err != nil {
				return err
			}
			objects, err := c.objectStore(ctx)
			if err != nil {
				return err
			}

			var source queue.ObjectSource
			if objects != nil {
				source = objects
			}
			return queue.NewWorker(c.cfg.Queue, analyzer, source, c.logger).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent consumers (default from config)")
	return cmd
}
