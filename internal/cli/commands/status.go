package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"Flashcards/internal/cli/api"
	"Flashcards/internal/config"
)

type dataResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show whether the stored token is accepted" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, _ := authStore(cfg).Load()
	ctx, cancel := withRequestTimeout(ctx, cfg)
	defer cancel()

	resp, body, err := api.GetJSON(ctx, cfg.ServerURL+"/api/user/status", token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp, body)
	}
	var dr dataResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	login, err := authService(cfg).CurrentUser()
	if err != nil {
		login = "-"
	}
	fmt.Fprintln(Out, "Status:", dr.Result)
	fmt.Fprintln(Out, "Login:", login)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
