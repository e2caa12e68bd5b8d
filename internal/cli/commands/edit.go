package commands

import (
	"context"
	"fmt"

	"Flashcards/internal/config"
)

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Change a flashcard and mark it reviewed" }
func (editCmd) Usage() string       { return "edit <id> <question> <answer> [category] [difficulty]" }

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 || len(args) > 5 || args[0] == "" {
		return ErrUsage
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	// незаданные категория и сложность остаются прежними
	if err := s.holder.Open(ctx, args[0]); err != nil {
		return err
	}
	card, err := cardFromArgs(args[1:], *s.holder.Snapshot().Current)
	if err != nil {
		return err
	}
	if _, err := s.holder.Update(ctx, card); err != nil {
		return err
	}
	fmt.Fprintln(Out, s.holder.Snapshot().Success)
	return nil
}

func init() { RegisterCmd(editCmd{}) }
