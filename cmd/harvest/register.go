package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register the local player",
	Long: `Register the local player in the ledger so scores are ranked.

Names are 3-50 characters: letters, digits, spaces, hyphens and underscores.
Surrounding whitespace is trimmed. An address can register only once.

Examples:
  harvest register "fruit fan"
  harvest register ninja --player alice@laptop`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening ledger: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	addr := localPlayer()
	err = store.Register(ctx, addr, args[0])
	switch {
	case errors.Is(err, storage.ErrAlreadyRegistered):
		info, infoErr := store.PlayerInfo(ctx, addr)
		if infoErr == nil && info != nil {
			return fmt.Errorf("%s is already registered as %q", addr, info.Name)
		}
		return fmt.Errorf("%s: %w", addr, err)
	case err != nil:
		return err
	}

	name, _ := storage.ValidateName(args[0])
	fmt.Printf("Registered %s as %q\n", addr, name)
	return nil
}
