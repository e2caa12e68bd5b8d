package commands

import (
	"Flashcards/internal/config"
	"context"
	"fmt"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget stored auth token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := authService(cfg).Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
