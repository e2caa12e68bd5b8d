package commands

import (
	"context"
	"fmt"

	"Flashcards/internal/config"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Delete a flashcard" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.holder.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, s.holder.Snapshot().Success)
	return nil
}

func init() { RegisterCmd(deleteCmd{}) }
