package cli

import (
	"context"
	"fmt"

	"github.com/cardkit-labs/cardkit/internal/branding"
	"github.com/cardkit-labs/cardkit/internal/card"
	"github.com/cardkit-labs/cardkit/internal/config"
	"github.com/cardkit-labs/cardkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	// registries is the host's registry set, handed over by Execute.
	registries *card.Registries
	// settings is loaded once per invocation by the root PersistentPreRunE.
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves card document nodes to element and action types through a
versioned type registry, and parses and validates card documents with it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		s, err := config.Current()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		settings = s

		logger := logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	},
}

// Execute runs the root command against the given registries with build
// info injected via ldflags.
func Execute(g *card.Registries, version, commit, date string) error {
	registries = g
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// activeSession resets the active registries to the defaults, removes the
// types disabled in the config, and returns them as a parse session.
func activeSession(cmd *cobra.Command) *card.Session {
	logger := logging.FromContext(cmd.Context())

	registries.Reset()
	elements, actions := registries.Elements(), registries.Actions()
	for _, name := range settings.DisabledElements {
		logger.Debug("Disabling element type.", "type", name)
		elements.Unregister(name)
	}
	for _, name := range settings.DisabledActions {
		logger.Debug("Disabling action type.", "type", name)
		actions.Unregister(name)
	}
	return &card.Session{Elements: elements, Actions: actions}
}
