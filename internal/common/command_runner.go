package common

import (
	"context"
	"time"

	"resuscan/internal/errors"
)

// OperationFunc produces one command result.
type OperationFunc[Output any] func(context.Context) (Output, error)

// RunCommandTo runs op, logs how long it took, and writes the result
// through out with the configured format and destination.
func RunCommandTo[Output any](
	ctx context.Context,
	logger *errors.Logger,
	out *OutputHandler,
	cmdConfig CommandConfig,
	name string,
	op OperationFunc[Output],
) error {
	if err := out.fileProcessor.ValidateOutputFile(cmdConfig.OutputFile); err != nil {
		return err
	}

	start := time.Now()
	if logger != nil {
		logger.Debug("Running command", "command", name, "format", cmdConfig.OutputFormat)
	}

	result, err := op(ctx)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Debug("Command finished", "command", name, "duration", time.Since(start).String())
	}
	return out.HandleOutput(result, cmdConfig)
}
