package commands

import (
	"context"
	"fmt"
	"strings"

	"Flashcards/internal/config"
)

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "Show total and due-for-review counts" }
func (statsCmd) Usage() string       { return "stats" }

func (statsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := withRequestTimeout(ctx, cfg)
	defer cancel()
	st, err := s.client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Total:          %d\n", st.Total)
	fmt.Fprintf(Out, "Due for review: %d\n", st.DueForReview)
	fmt.Fprintf(Out, "Categories:     %s\n", strings.Join(st.Categories, ", "))
	return nil
}

func init() { RegisterCmd(statsCmd{}) }
