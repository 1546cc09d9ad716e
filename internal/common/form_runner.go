package common

import (
	"context"
	"fmt"

	"atsbuddy/internal/errors"
	"atsbuddy/internal/forms"
)

// CreateInputFunc defines how to build the typed request from file contents.
type CreateInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// RunFormCommand encapsulates the common logic for file-based tool commands:
// read the inputs, build the request, drive the remote form through its
// validate/submit cycle, and hand the result to the output handler. Field
// validation failures surface before any network call is made.
func RunFormCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	contents []string,
	createInput CreateInputFunc[Input],
	form *forms.Form[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	outputHandler := NewOutputHandler(logger)

	input, err := createInput(contents)
	if err != nil {
		return fmt.Errorf("failed to create input from file contents: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := form.Submit(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}

// ReadCommandInputs validates and reads the positional input files for a
// tool command.
func ReadCommandInputs(logger *errors.Logger, filenames ...string) ([]string, error) {
	return NewFileProcessor(logger).ValidateAndReadFiles(filenames...)
}
