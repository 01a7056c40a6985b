package commands

import (
	"errors"

	"barrieredi/internal/pkg/guard"
)

var ErrSyncOrdersCommandIsNotConstructed = errors.New(
	"SyncOrdersCommand must be created via NewSyncOrdersCommand constructor",
)

// SyncOrdersCommand represents a batch synchronization run over the order
// feed. The batch comes from inline payloads when given, otherwise from the
// JSON file at FilePath, otherwise from the built-in sample batch. With
// DryRun set the entries are only validated, nothing is written.
//
// Example:
//
//	cmd, err := NewSyncOrdersCommand("/var/feed/orders.json", nil, false)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewSyncOrdersCommandHandler(importer)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d imported, %d failed", result.Imported, len(result.Errors))
type SyncOrdersCommand struct { //nolint:recvcheck //using for validation
	filePath string
	payloads []OrderPayload
	dryRun   bool

	guard guard.ConstructorGuard
}

// NewSyncOrdersCommand creates a command for one synchronization run.
// Both the file path and the inline payloads may be empty; the handler then
// falls back to the built-in sample batch.
func NewSyncOrdersCommand(filePath string, payloads []OrderPayload, dryRun bool) (SyncOrdersCommand, error) {
	return SyncOrdersCommand{
		filePath: filePath,
		payloads: payloads,
		dryRun:   dryRun,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncOrdersCommandIsNotConstructed if validation fails.
func (c SyncOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrdersCommandIsNotConstructed)
}

// FilePath returns the feed file to read when no inline payloads are given.
func (c SyncOrdersCommand) FilePath() string {
	return c.filePath
}

// Payloads returns the inline batch, which takes precedence over the file.
func (c SyncOrdersCommand) Payloads() []OrderPayload {
	return c.payloads
}

// DryRun reports whether entries are only validated.
func (c SyncOrdersCommand) DryRun() bool {
	return c.dryRun
}
