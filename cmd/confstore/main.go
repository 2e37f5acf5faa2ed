// FILE: lixenwraith/confstore/cmd/confstore/main.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/confstore"
)

const appName = "confstore"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates schema violations from I/O failures.
func exitCode(err error) int {
	var schemaErr *confstore.SchemaError
	if errors.As(err, &schemaErr) {
		return 2
	}
	return 1
}

type rootFlags struct {
	dir     string
	format  string
	create  bool
	verbose bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Inspect and edit configuration documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	defaultDir, _ := confstore.DiscoverDir(confstore.DefaultDirDiscoveryOptions(appName))
	root.PersistentFlags().StringVarP(&flags.dir, "dir", "d", defaultDir, "config directory (default from $CONFSTORE_DIR or XDG paths)")
	root.PersistentFlags().StringVarP(&flags.format, "format", "f", "json", "document format: json, toml or yaml")
	root.PersistentFlags().BoolVar(&flags.create, "create", false, "create missing documents instead of failing")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log store operations to stderr")

	root.AddCommand(
		newShowCmd(flags),
		newCheckCmd(flags),
		newSetCmd(flags),
		newInitCmd(flags),
	)
	return root
}

// openStore builds the store from the global flags.
func openStore(flags *rootFlags) (*confstore.Store, error) {
	logger := zap.NewNop()
	if flags.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
	}

	return confstore.NewBuilder().
		WithDir(flags.dir).
		WithFormat(flags.format).
		WithCreateMissing(flags.create).
		WithLogger(logger).
		Build()
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME [PATH]",
		Short: "Print a document or the value at a dot-separated path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}
			doc, err := store.Load(args[0])
			if err != nil {
				return err
			}

			var value any = map[string]any(doc)
			if len(args) == 2 {
				v, ok := doc.Lookup(args[1])
				if !ok {
					return fmt.Errorf("path %q not found in %s", args[1], args[0])
				}
				value = v
			}
			return printJSON(cmd.OutOrStdout(), value)
		},
	}
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var specFile string
	var fix bool

	cmd := &cobra.Command{
		Use:   "check NAME",
		Short: "Validate a document against a required-keys spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(specFile)
			if err != nil {
				return fmt.Errorf("failed to read spec file '%s': %w", specFile, err)
			}
			spec, err := confstore.ParseSpec(data)
			if err != nil {
				return err
			}

			store, err := openStore(flags)
			if err != nil {
				return err
			}
			doc, err := store.Load(args[0])
			if err != nil {
				return err
			}

			before := doc.Clone()
			if _, err := confstore.Validate(spec, doc); err != nil {
				return err
			}

			if fix && !equalJSON(before, doc) {
				if err := store.Save(args[0], doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (aliases rewritten)\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&specFile, "spec", "s", "", "JSON spec file")
	cmd.Flags().BoolVar(&fix, "fix", false, "save the document with aliased keys renamed to canonical keys")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func newSetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME PATH VALUE",
		Short: "Set a value; VALUE is parsed as JSON, falling back to a plain string",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}
			doc, err := store.Load(args[0])
			if err != nil {
				return err
			}

			doc.Set(args[1], parseValue(args[2]))
			return store.Save(args[0], doc)
		},
	}
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init NAME",
		Short: "Create an empty document if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}
			if store.Exists(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", store.Path(args[0]))
				return nil
			}
			if err := store.Save(args[0], confstore.Document{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", store.Path(args[0]))
			return nil
		},
	}
}

// parseValue decodes s as a JSON literal, keeping it as a string otherwise.
func parseValue(s string) any {
	if !json.Valid([]byte(s)) {
		return s
	}
	doc, err := confstore.JSON.Decode([]byte(`{"v":` + s + `}`))
	if err != nil {
		return s
	}
	return doc.(map[string]any)["v"]
}

func printJSON(w io.Writer, v any) error {
	data, err := confstore.JSON.Encode(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func equalJSON(a, b confstore.Document) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ja) == string(jb)
}
