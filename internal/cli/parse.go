package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cardkit-labs/cardkit/internal/card"
	"github.com/cardkit-labs/cardkit/internal/schemaver"
	"github.com/spf13/cobra"
)

var (
	parseJSON          bool
	parseStrict        bool
	parseSchemaVersion string
	parseDisable       []string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a card document and print its element tree",
	Long: `Parse a JSON or YAML card document through the active type registry.

Nodes whose type is unknown or newer than the document version are replaced
by stand-ins and reported as events; with --strict (or strict: true in the
config) the first such node fails the parse.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output in JSON format")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "Fail on unknown, version-gated or misplaced types")
	parseCmd.Flags().StringVar(&parseSchemaVersion, "schema-version", "", "Version assumed when the document declares none")
	parseCmd.Flags().StringSliceVar(&parseDisable, "disable", nil, "Element or action types to unregister for this run")
	_ = parseCmd.RegisterFlagCompletionFunc("disable", completeTypeNames)
	rootCmd.AddCommand(parseCmd)
}

// parsedNode is one line of the printed tree.
type parsedNode struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Depth int    `json:"depth"`
}

type parseOutput struct {
	Version  string            `json:"version"`
	Elements []parsedNode      `json:"elements"`
	Actions  []parsedNode      `json:"actions"`
	Events   []card.ParseEvent `json:"events"`
}

func runParse(cmd *cobra.Command, args []string) error {
	session := activeSession(cmd)
	for _, name := range parseDisable {
		session.Elements.Unregister(name)
		session.Actions.Unregister(name)
	}

	p := card.NewParser(session)
	p.DefaultVersion = settings.SchemaVersion
	p.MaxVersion = settings.MaxVersion
	p.Strict = settings.Strict || parseStrict
	if parseSchemaVersion != "" {
		v, err := schemaver.Parse(parseSchemaVersion)
		if err != nil {
			return fmt.Errorf("parsing --schema-version: %w", err)
		}
		p.DefaultVersion = v
	}

	res, err := p.ParseFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := buildParseOutput(res)
	if parseJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling parse result: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	printParseTree(cmd.OutOrStdout(), out)
	return nil
}

func buildParseOutput(res *card.Result) parseOutput {
	out := parseOutput{
		Version:  res.Version.String(),
		Elements: []parsedNode{},
		Actions:  []parsedNode{},
		Events:   res.Events,
	}
	if out.Events == nil {
		out.Events = []card.ParseEvent{}
	}
	card.Walk(res.Card, func(el card.Element, depth int) bool {
		out.Elements = append(out.Elements, parsedNode{Type: el.JSONTypeName(), ID: el.Base().ID, Depth: depth})
		return true
	})
	for _, a := range res.Card.Actions {
		out.Actions = append(out.Actions, parsedNode{Type: a.JSONTypeName(), ID: a.ActionBase().ID})
	}
	return out
}

func printParseTree(w io.Writer, out parseOutput) {
	fmt.Fprintf(w, "%s %s\n", card.TypeAdaptiveCard, out.Version)
	for _, n := range out.Elements {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", n.Depth+1), nodeLabel(n))
	}
	if len(out.Actions) > 0 {
		fmt.Fprintln(w, "actions:")
		for _, n := range out.Actions {
			fmt.Fprintf(w, "  %s\n", nodeLabel(n))
		}
	}
	if len(out.Events) > 0 {
		fmt.Fprintf(w, "events (%d):\n", len(out.Events))
		for _, ev := range out.Events {
			fmt.Fprintf(w, "  %s\n", ev)
		}
	}
}

func nodeLabel(n parsedNode) string {
	if n.ID == "" {
		return n.Type
	}
	return n.Type + " #" + n.ID
}

func completeTypeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if registries == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, item := range registries.DefaultElements().Items() {
		if strings.HasPrefix(item.TypeName, toComplete) {
			names = append(names, item.TypeName)
		}
	}
	for _, item := range registries.DefaultActions().Items() {
		if strings.HasPrefix(item.TypeName, toComplete) {
			names = append(names, item.TypeName)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
