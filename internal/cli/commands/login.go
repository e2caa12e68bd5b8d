package commands

import (
	"Flashcards/internal/cli/api"
	"Flashcards/internal/cli/bootstrap"
	"Flashcards/internal/config"
	"context"
	"errors"
	"fmt"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if err := authService(cfg).Login(ctx, args[0], args[1]); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("invalid login or password")
		}
		return err
	}
	if err := prepareCache(cfg); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

// prepareCache создаёт локальный кеш пользователя сразу после входа.
func prepareCache(cfg *config.Config) error {
	_, done, err := bootstrap.OpenFlashcardCache(cfg)
	if err != nil {
		return err
	}
	return done()
}

func init() { RegisterCmd(loginCmd{}) }
