package system

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/constants"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show storage location."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump the raw document stored under a key as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"backend": ctx.Config.Storage.Backend,
		"path":    ctx.Provider.GetConfigPath(),
	})
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Provider.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	slices.Sort(keys)
	return printJSON(keys)
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Storage key, with or without the ripple_ prefix (e.g. habits)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	key := cmd.Key
	if !slices.Contains(constants.AllStorageKeys, key) {
		key = constants.AppName + "_" + key
	}
	if !slices.Contains(constants.AllStorageKeys, key) {
		return fmt.Errorf("unknown key %q (known: %v)", cmd.Key, constants.AllStorageKeys)
	}

	var doc json.RawMessage
	found, err := ctx.Provider.Get(key, &doc)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found {
		return fmt.Errorf("nothing stored under %s", key)
	}
	return printJSON(doc)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
