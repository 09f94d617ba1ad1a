package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jsl").
		WithSynopsis("jsl [opts] command [opts]").
		WithDescription("jsl compiles declarative field trees into JSON Schema documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jslMain(cfg, cc, args)
		}).
		WithSubs(
			CompileCommand(cfg),
			FieldsCommand(cfg),
			DiffCommand(cfg))
}

func jslMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func CompileCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompileConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Compile, "compile").
		WithAliases("c", "co").
		WithSynopsis("compile [-doc name] [files]").
		WithDescription("compile documents from definitions files into schemas").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return compileRun(cfg, cc, args)
		})
}

func FieldsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FieldsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fields, "fields").
		WithAliases("f", "fi").
		WithSynopsis("fields [-doc name] [-through] [-kind k] [files]").
		WithDescription("walk a document's field tree and list its fields").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fieldsRun(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-doc name] [-text] a b").
		WithDescription("diff two compiled schemas").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffRun(cfg, cc, args)
		})
}
