package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cardkit-labs/cardkit/internal/card"
	"github.com/cardkit-labs/cardkit/internal/config"
	"github.com/cardkit-labs/cardkit/internal/registry"
	"github.com/spf13/cobra"
)

var (
	doctorFix   bool
	doctorCards []string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create the config directory if it is missing")
	doctorCmd.Flags().StringSliceVar(&doctorCards, "check-card", nil, "Also validate and parse the given card files")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the CardKit installation",
	Long: `Run diagnostic checks on the config, the embedded card schema and the
default type registries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		failures := 0

		if err := checkConfig(w); err != nil {
			return err
		}
		checkSettings(w)
		failures += checkSchema(w)

		fmt.Fprintln(w, "\nRegistry check:")
		failures += checkRegistrations(w, "element", registries.DefaultElements())
		failures += checkRegistrations(w, "action", registries.DefaultActions())

		for _, path := range doctorCards {
			fmt.Fprintln(w)
			if err := runValidate(cmd, path); err != nil {
				failures++
				continue
			}
			if err := checkCardParse(cmd, path); err != nil {
				failures++
			}
		}

		if failures > 0 {
			return fmt.Errorf("doctor found %d problem(s)", failures)
		}
		return nil
	},
}

func checkConfig(w io.Writer) error {
	fmt.Fprintln(w, "Config check:")

	dir := config.Dir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", dir)
		if !doctorFix {
			fmt.Fprintln(w, "         Run 'cardkit doctor --fix' or 'cardkit config set' to create")
			return nil
		}
		if err := config.EnsureDir(); err != nil {
			return fmt.Errorf("auto-fix config dir: %w", err)
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", dir)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", dir)
	}

	if _, err := os.Stat(config.FilePath()); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [INFO] %s not found, using defaults\n", config.FilePath())
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", config.FilePath())
	}
	return nil
}

// checkSettings flags settings that load but cannot take effect.
func checkSettings(w io.Writer) {
	fmt.Fprintf(w, "  [ OK ] schema_version %s, max_version %s, strict %v\n",
		settings.SchemaVersion, settings.MaxVersion, settings.Strict)

	if settings.MaxVersion.Less(settings.SchemaVersion) {
		fmt.Fprintf(w, "  [WARN] schema_version %s is newer than max_version %s and will be clamped\n",
			settings.SchemaVersion, settings.MaxVersion)
	}
	for _, name := range settings.DisabledElements {
		if _, ok := registries.DefaultElements().FindByName(name); !ok {
			fmt.Fprintf(w, "  [WARN] disabled_elements: %s is not a registered element type\n", name)
		}
	}
	for _, name := range settings.DisabledActions {
		if _, ok := registries.DefaultActions().FindByName(name); !ok {
			fmt.Fprintf(w, "  [WARN] disabled_actions: %s is not a registered action type\n", name)
		}
	}
}

func checkSchema(w io.Writer) int {
	fmt.Fprintln(w, "\nSchema check:")
	if err := card.CheckSchema(); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "  [ OK ] Embedded card schema compiles")
	return 0
}

// checkRegistrations instantiates every registration and verifies the
// instance reports the name it was registered under.
func checkRegistrations[T registry.Typed](w io.Writer, kind string, reg *registry.TypeRegistry[T]) int {
	failures := 0
	for _, item := range reg.Items() {
		if got := item.New().JSONTypeName(); got != item.TypeName {
			fmt.Fprintf(w, "  [FAIL] %s %s: factory builds %q\n", kind, item.TypeName, got)
			failures++
		}
	}
	if failures == 0 {
		fmt.Fprintf(w, "  [ OK ] %d %s types\n", reg.ItemCount(), kind)
	}
	return failures
}

func checkCardParse(cmd *cobra.Command, path string) error {
	w := cmd.OutOrStdout()
	p := card.NewParser(activeSession(cmd))
	p.DefaultVersion = settings.SchemaVersion
	p.MaxVersion = settings.MaxVersion
	p.Strict = settings.Strict

	res, err := p.ParseFile(cmd.Context(), path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return err
	}
	if len(res.Events) == 0 {
		fmt.Fprintf(w, "  [ OK ] Parses cleanly at %s\n", res.Version)
		return nil
	}
	fmt.Fprintf(w, "  [WARN] Parses at %s with %d event(s):\n", res.Version, len(res.Events))
	for _, ev := range res.Events {
		fmt.Fprintf(w, "    - %s\n", ev)
	}
	return nil
}
