package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"Flashcards/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Show flashcards, optionally filtered" }
func (listCmd) Usage() string       { return "list [-q text] [-c cat1,cat2] [-d 1,2]" }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	query := fs.String("q", "", "search in question, answer and category")
	cats := fs.String("c", "", "comma separated categories")
	diffs := fs.String("d", "", "comma separated difficulties")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	var difficulties []int
	for _, v := range splitList(*diffs) {
		d, err := parseDifficulty(v)
		if err != nil {
			return err
		}
		difficulties = append(difficulties, d)
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	// ошибка сервера не фатальна: holder покажет последний кеш
	if err := s.holder.Load(ctx); err != nil {
		fmt.Fprintf(Out, "! %s (showing cached flashcards)\n", s.holder.Snapshot().Error)
	}
	if *query != "" {
		s.holder.SetSearch(query)
	}
	s.holder.SetCategories(splitList(*cats))
	s.holder.SetDifficulties(difficulties)

	st := s.holder.Snapshot()
	printCards(st.Visible)
	if !st.Filter.IsEmpty() {
		fmt.Fprintf(Out, "Показано %d из %d\n", len(st.Visible), st.Total)
	}
	return nil
}

func init() { RegisterCmd(listCmd{}) }
