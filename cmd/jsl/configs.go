package main

import (
	"os"

	"github.com/scott-cotton/cli"

	"github.com/chhabrakadabra/jsl/document"
	"github.com/chhabrakadabra/jsl/encode"
	"github.com/chhabrakadabra/jsl/field"
	"github.com/chhabrakadabra/jsl/loader"
	"github.com/chhabrakadabra/jsl/registry"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='render schemas as json (default)'"`
	Y     bool `cli:"name=y aliases=yaml desc='render schemas as yaml'"`
	Color bool `cli:"name=color desc='force color in json output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) render(cc *cli.Context, s field.Schema) error {
	opts := &encode.Options{
		Color: cfg.Color || encode.IsTerminal(cc.Out),
	}
	if cfg.Y {
		return encode.YAML(cc.Out, s, opts)
	}
	return encode.JSON(cc.Out, s, opts)
}

// loadFiles loads every definitions file into one fresh registry so
// documents may reference each other across files.
func loadFiles(files []string) ([]*document.Document, error) {
	l := loader.New(registry.New())
	var docs []*document.Document
	for _, f := range files {
		ds, err := l.LoadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, ds...)
	}
	return docs, nil
}

func findDoc(docs []*document.Document, name string) *document.Document {
	for _, doc := range docs {
		if doc.Name() == name || doc.DefinitionID() == name {
			return doc
		}
	}
	return nil
}
