package commands

import (
	"context"

	"Flashcards/internal/config"
)

type byCategoryCmd struct{}

func (byCategoryCmd) Name() string        { return "by-category" }
func (byCategoryCmd) Description() string { return "Show flashcards of exactly one category (server side)" }
func (byCategoryCmd) Usage() string       { return "by-category <category>" }

func (byCategoryCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := withRequestTimeout(ctx, cfg)
	defer cancel()
	cards, err := s.client.ListByCategory(ctx, args[0])
	if err != nil {
		return err
	}
	printCards(cards)
	return nil
}

func init() { RegisterCmd(byCategoryCmd{}) }
