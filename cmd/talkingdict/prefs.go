package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/localstore"
)

func newPrefsCommand() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage local display preferences",
	}

	prefsCmd.AddCommand(
		newPrefsGetCommand(),
		newPrefsSetCommand(),
		newPrefsListCommand(),
	)

	return prefsCmd
}

// openPreferences opens the preference store. Unlike bookmarks there is
// no in-memory fallback: a preference that cannot be persisted is not
// worth setting.
func openPreferences() (localstore.PreferenceRepository, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}
	db, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("localstore.Open() > %w", err)
	}
	return localstore.NewDBPreferenceRepository(db), nil
}

func newPrefsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, err := openPreferences()
			if err != nil {
				return err
			}
			value, err := preferences.Get(cmd.Context(), args[0])
			if errors.Is(err, localstore.ErrPreferenceNotFound) {
				return fmt.Errorf("preference %q is not set", args[0])
			}
			if err != nil {
				return fmt.Errorf("preferences.Get() > %w", err)
			}
			fmt.Println(value)
			return nil
		},
	}
}

func newPrefsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, err := openPreferences()
			if err != nil {
				return err
			}
			if err := preferences.Set(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("preferences.Set() > %w", err)
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newPrefsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			preferences, err := openPreferences()
			if err != nil {
				return err
			}
			all, err := preferences.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("preferences.All() > %w", err)
			}

			keys := make([]string, 0, len(all))
			for key := range all {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Printf("%s = %s\n", key, all[key])
			}
			return nil
		},
	}
}
