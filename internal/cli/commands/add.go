package commands

import (
	"context"
	"fmt"

	"Flashcards/internal/config"
	"Flashcards/internal/model"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Add a flashcard" }
func (addCmd) Usage() string       { return "add <question> <answer> [category] [difficulty]" }

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrUsage
	}
	card, err := cardFromArgs(args, model.Flashcard{
		Category:   model.DefaultCategory,
		Difficulty: model.DefaultDifficulty,
	})
	if err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.holder.Add(ctx, card)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, s.holder.Snapshot().Success)
	fmt.Fprintf(Out, "  id: %s\n", id)
	return nil
}

func init() { RegisterCmd(addCmd{}) }
