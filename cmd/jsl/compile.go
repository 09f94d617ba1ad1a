package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/chhabrakadabra/jsl/document"
)

type CompileConfig struct {
	*MainConfig
	Doc     string `cli:"name=doc desc='compile only the named document'"`
	Compile *cli.Command
}

func compileRun(cfg *CompileConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compile.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: compile requires at least one definitions file", cli.ErrUsage)
	}
	docs, err := loadFiles(args)
	if err != nil {
		return err
	}
	selected := docs
	if cfg.Doc != "" {
		doc := findDoc(docs, cfg.Doc)
		if doc == nil {
			return fmt.Errorf("%w: no document named %q", cli.ErrUsage, cfg.Doc)
		}
		selected = []*document.Document{doc}
	}
	for i, doc := range selected {
		schema, err := doc.Schema()
		if err != nil {
			return fmt.Errorf("compile %s: %w", doc.DefinitionID(), err)
		}
		if err := cfg.render(cc, schema); err != nil {
			return err
		}
		if i < len(selected)-1 {
			fmt.Fprintln(cc.Out, "---")
		}
	}
	return nil
}
