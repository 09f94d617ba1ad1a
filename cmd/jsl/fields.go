package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/chhabrakadabra/jsl/field"
)

type FieldsConfig struct {
	*MainConfig
	Doc     string `cli:"name=doc desc='document whose fields to list'"`
	Through bool   `cli:"name=through desc='descend into referenced documents'"`
	Kind    string `cli:"name=kind desc='list only fields of this kind'"`
	Fields  *cli.Command
}

func fieldsRun(cfg *FieldsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fields.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: fields requires at least one definitions file", cli.ErrUsage)
	}
	docs, err := loadFiles(args)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: no documents defined", cli.ErrUsage)
	}
	doc := docs[0]
	if cfg.Doc != "" {
		doc = findDoc(docs, cfg.Doc)
		if doc == nil {
			return fmt.Errorf("%w: no document named %q", cli.ErrUsage, cfg.Doc)
		}
	} else if len(docs) > 1 {
		return fmt.Errorf("%w: multiple documents defined, use -doc", cli.ErrUsage)
	}
	for f, err := range doc.Walk(cfg.Through, nil) {
		if err != nil {
			return err
		}
		k := kindOf(f)
		if cfg.Kind != "" && k != cfg.Kind {
			continue
		}
		fmt.Fprintln(cc.Out, k)
	}
	return nil
}

func kindOf(f field.Field) string {
	switch f.(type) {
	case *field.String:
		return "string"
	case *field.Email:
		return "email"
	case *field.URI:
		return "uri"
	case *field.DateTime:
		return "date-time"
	case *field.IPv4:
		return "ipv4"
	case *field.Boolean:
		return "boolean"
	case *field.Number:
		return "number"
	case *field.Integer:
		return "integer"
	case *field.Array:
		return "array"
	case *field.Object:
		return "object"
	case *field.OneOf:
		return "oneOf"
	case *field.AnyOf:
		return "anyOf"
	case *field.AllOf:
		return "allOf"
	case *field.Not:
		return "not"
	case *field.DocumentField:
		return "document"
	}
	return fmt.Sprintf("%T", f)
}
