package commands

import (
	"Flashcards/internal/cli/api"
	"Flashcards/internal/config"
	"context"
	"errors"
	"fmt"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and log in" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if err := authService(cfg).Register(ctx, args[0], args[1]); err != nil {
		if errors.Is(err, api.ErrConflict) {
			return errors.New("login already in use")
		}
		return err
	}
	if err := prepareCache(cfg); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Registration Successful")
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
