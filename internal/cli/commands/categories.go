package commands

import (
	"context"
	"fmt"

	"Flashcards/internal/config"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "Show distinct categories" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.holder.Load(ctx); err != nil {
		fmt.Fprintf(Out, "! %s (showing cached flashcards)\n", s.holder.Snapshot().Error)
	}
	cats := s.holder.Snapshot().Categories
	if len(cats) == 0 {
		fmt.Fprintln(Out, "Нет категорий")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintln(Out, "-", c)
	}
	return nil
}

func init() { RegisterCmd(categoriesCmd{}) }
