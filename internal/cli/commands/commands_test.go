package commands

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"format", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewUpdateTodoCommand(t *testing.T) {
	cmd := NewUpdateTodoCommand()
	assert.Equal(t, "update-todo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()
	assert.Equal(t, "validate", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestNewListPackagesCommand(t *testing.T) {
	cmd := NewListPackagesCommand()
	assert.Equal(t, "list-packages", cmd.Use)
}

func TestCommandsFailWithoutConfig(t *testing.T) {
	// Commands are wired to run under the root command, which loads config
	// into the context. Bare execution must fail cleanly, not panic.
	bare := func(cmd *cobra.Command) *cobra.Command {
		cmd.SetContext(context.Background())
		return cmd
	}
	for _, run := range []func() error{
		func() error { return runCheck(bare(NewCheckCommand()), &CheckOptions{}) },
		func() error { return runUpdateTodo(bare(NewUpdateTodoCommand()), nil) },
		func() error { return runValidate(bare(NewValidateCommand()), nil) },
		func() error { return runListPackages(bare(NewListPackagesCommand()), nil) },
	} {
		assert.ErrorContains(t, run(), "configuration not loaded")
	}
}
