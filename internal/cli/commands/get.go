package commands

import (
	"context"

	"Flashcards/internal/config"
)

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Show one flashcard" }
func (getCmd) Usage() string       { return "get <id>" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.holder.Open(ctx, args[0]); err != nil {
		return err
	}
	printCard(s.holder.Snapshot().Current)
	return nil
}

func init() { RegisterCmd(getCmd{}) }
