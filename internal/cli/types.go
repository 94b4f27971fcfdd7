package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/cardkit-labs/cardkit/internal/registry"
	"github.com/cardkit-labs/cardkit/internal/schemaver"
	"github.com/spf13/cobra"
)

var (
	typesActions  bool
	typesDefaults bool
	typesAt       string
	typesJSON     bool
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered element or action types",
	Long: `List the types of the active registry in registration order, with the schema
version that introduced each type and its singleton behavior.

Types disabled in the config are not listed unless --defaults is given.`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesActions, "actions", false, "List action types instead of element types")
	typesCmd.Flags().BoolVar(&typesDefaults, "defaults", false, "List the default catalog instead of the active registry")
	typesCmd.Flags().StringVar(&typesAt, "at", "", "Report availability at this document schema version")
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(typesCmd)
}

// typeEntry represents a registered type for display.
type typeEntry struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Singleton string `json:"singleton"`
	Available *bool  `json:"available,omitempty"`
}

func runTypes(cmd *cobra.Command, args []string) error {
	var at *schemaver.Version
	if typesAt != "" {
		v, err := schemaver.Parse(typesAt)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
		at = &v
	}

	var entries []typeEntry
	if typesActions {
		reg := activeSession(cmd).Actions
		if typesDefaults {
			reg = registries.DefaultActions()
		}
		entries = typeEntries(reg, at)
	} else {
		reg := activeSession(cmd).Elements
		if typesDefaults {
			reg = registries.DefaultElements()
		}
		entries = typeEntries(reg, at)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No types registered.")
		return nil
	}
	if typesJSON {
		return printTypesJSON(cmd, entries)
	}
	return printTypesTable(cmd, entries)
}

// typeEntries walks reg positionally. at, if set, is probed through
// CreateInstance so availability reflects the real version gate.
func typeEntries[T registry.Typed](reg *registry.TypeRegistry[T], at *schemaver.Version) []typeEntry {
	entries := make([]typeEntry, 0, reg.ItemCount())
	for i := 0; i < reg.ItemCount(); i++ {
		item := reg.ItemAt(i)
		entry := typeEntry{
			Name:      item.TypeName,
			Version:   item.SchemaVersion.String(),
			Singleton: item.SingletonBehavior.String(),
		}
		if at != nil {
			_, ok := reg.CreateInstance(item.TypeName, *at)
			entry.Available = &ok
		}
		entries = append(entries, entry)
	}
	return entries
}

func printTypesTable(cmd *cobra.Command, entries []typeEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	withAvailability := entries[0].Available != nil
	if withAvailability {
		fmt.Fprintln(w, "TYPE\tSINCE\tSINGLETON\tAVAILABLE")
	} else {
		fmt.Fprintln(w, "TYPE\tSINCE\tSINGLETON")
	}
	for _, e := range entries {
		if withAvailability {
			available := "no"
			if *e.Available {
				available = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Singleton, available)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Version, e.Singleton)
		}
	}
	return w.Flush()
}

func printTypesJSON(cmd *cobra.Command, entries []typeEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
