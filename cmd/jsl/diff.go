package main

import (
	"bytes"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/chhabrakadabra/jsl/encode"
	"github.com/chhabrakadabra/jsl/field"
	"github.com/chhabrakadabra/jsl/loader"
	"github.com/chhabrakadabra/jsl/registry"
)

type DiffConfig struct {
	*MainConfig
	Doc  string `cli:"name=doc desc='document to compile from each definitions file'"`
	Text bool   `cli:"name=text desc='also show a character diff'"`
	Diff *cli.Command
}

func diffRun(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := sideSchema(cfg, args[0])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	b, err := sideSchema(cfg, args[1])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[1], err)
	}
	patch, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return err
	}
	if string(patch) == "{}" {
		return nil
	}
	fmt.Fprintln(cc.Out, string(patch))
	if cfg.Text {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(a), string(b), false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		fmt.Fprintln(cc.Out, dmp.DiffPrettyText(diffs))
	}
	return cli.ExitCodeErr(1)
}

// sideSchema produces canonical JSON for one side of the diff: a
// definitions file is loaded and compiled, anything else is treated as
// an already-compiled schema document.
func sideSchema(cfg *DiffConfig, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var probe struct {
		Documents []any `yaml:"documents"`
	}
	if yaml.Unmarshal(data, &probe) == nil && len(probe.Documents) > 0 {
		l := loader.New(registry.New())
		docs, err := l.Load(data)
		if err != nil {
			return nil, err
		}
		doc := docs[0]
		if cfg.Doc != "" {
			doc = findDoc(docs, cfg.Doc)
			if doc == nil {
				return nil, fmt.Errorf("%w: no document named %q", cli.ErrUsage, cfg.Doc)
			}
		}
		schema, err := doc.Schema()
		if err != nil {
			return nil, err
		}
		return canonical(schema)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return canonical(field.Schema(raw))
}

func canonical(s field.Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.JSON(&buf, s, &encode.Options{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
