// Command ecsgen writes the arity-expanded sources of package ecs: the
// Zipper1..N iterators and the System1..N contracts with their
// registration helpers.
//
// It is run through go:generate from the ecs package directory.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/tools/imports"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		out      string
		maxArity int
	)

	cmd := &cobra.Command{
		Use:          "ecsgen",
		Short:        "Generate the arity-expanded sources of package ecs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			return generateAll(logger, out, maxArity)
		},
	}

	cmd.Flags().StringVar(&out, "out", ".", "Directory the generated files are written to.")
	cmd.Flags().IntVar(&maxArity, "arity", 4, "Highest number of component types to generate for.")
	return cmd
}

// outputs maps each generated file name to the template producing it.
var outputs = []struct {
	name string
	tmpl *template.Template
}{
	{"zipper_generated.go", zipperTemplate},
	{"system_generated.go", systemTemplate},
}

func generateAll(logger zerolog.Logger, dir string, maxArity int) error {
	if maxArity < 1 || maxArity > len(letters) {
		return eris.Errorf("arity must be within [1, %d], got %d", len(letters), maxArity)
	}

	arities := make([]Arity, 0, maxArity)
	for n := 1; n <= maxArity; n++ {
		arities = append(arities, Arity{N: n})
	}

	for _, output := range outputs {
		path := filepath.Join(dir, output.name)
		src, err := render(output.tmpl, path, arities)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", path)
		}
		logger.Info().Str("file", path).Int("arity", maxArity).Msg("generated")
	}
	return nil
}

// render executes tmpl and formats the result like gofmt, fixing up the
// import block.
func render(tmpl *template.Template, path string, arities []Arity) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, arities); err != nil {
		return nil, eris.Wrapf(err, "execute template for %s", path)
	}
	src, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return nil, eris.Wrapf(err, "format %s", path)
	}
	return src, nil
}
