package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ngodocs/internal/document"
	"github.com/cleared-dev/ngodocs/internal/session"
)

func newGenerateCommand(a *app) *cobra.Command {
	var sets []string
	var input string
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Compose one document from field values",
		Long: `Compose one document from field values.

Fields come from the organization section of the config, then --input,
then --set, later sources winning. Use "ngodocs kinds" to list field names.
In --set values a literal \n starts a new list item.`,
		Example: `  ngodocs generate receipt --set donor_name="Anita Rao" --set amount=1500
  ngodocs generate meeting --input minutes.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}
			f, err := document.ParseFormat(format)
			if err != nil {
				return err
			}

			fields := a.prefill(k)
			if input != "" {
				in, err := readInput(input)
				if err != nil {
					return err
				}
				for name, v := range in {
					fields[name] = v
				}
			}
			for _, kv := range sets {
				name, v, ok := strings.Cut(kv, "=")
				if !ok || strings.TrimSpace(name) == "" {
					return fmt.Errorf("invalid --set %q: expected name=value", kv)
				}
				fields[strings.TrimSpace(name)] = strings.ReplaceAll(v, `\n`, "\n")
			}

			return a.generate(cmd, k, fields, f, outPath)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML file of field values")
	cmd.Flags().StringVarP(&format, "format", "f", string(document.FormatText), "output format: text, json or pdf")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")

	return cmd
}

func (a *app) generate(cmd *cobra.Command, k document.Kind, fields map[string]string, f document.Format, outPath string) error {
	req, err := document.FromFields(k, fields)
	if err != nil {
		return err
	}

	s := session.New(k.Scheme(), a.gen, a.now())
	p, err := a.composer().Compose(s, req)
	if err != nil {
		return err
	}
	if !p.Ready() {
		a.log.Debug("document not ready", "kind", k, "missing", p.NotReady.Missing)
		fmt.Fprintln(cmd.OutOrStdout(), p.NotReady.String())
		return nil
	}

	data, err := document.Export(p.Document, f)
	if err != nil {
		return err
	}
	a.log.Debug("composed document", "kind", k, "reference", p.Document.Reference, "session", s.ID)

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", outPath, p.Document.Reference)
	return nil
}

// readInput loads a YAML mapping of field values. Sequences become
// multi-line list fields and scalars are taken as written.
func readInput(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing input %s: %w", path, err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]string, len(raw))
	for _, name := range names {
		node := raw[name]
		switch node.Kind {
		case yaml.ScalarNode:
			fields[name] = node.Value
		case yaml.SequenceNode:
			items := make([]string, 0, len(node.Content))
			for _, item := range node.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("input %s: field %s: list items must be plain values", path, name)
				}
				items = append(items, item.Value)
			}
			fields[name] = strings.Join(items, "\n")
		default:
			return nil, fmt.Errorf("input %s: field %s: expected a value or a list", path, name)
		}
	}
	return fields, nil
}
