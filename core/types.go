package core

import "context"

// Worker is a long-running module process started by the `run` command.
type Worker interface {
	Run(ctx context.Context) error
}
