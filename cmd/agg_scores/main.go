package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/hscells/lcagg"
	"github.com/hscells/lcagg/pipeline"
)

var (
	name    = "agg_scores"
	version = "19.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	ResDir string `help:"Global dir where LC data are located" arg:"-r,--res_dir,required"`
	Config string `help:"Path to a TOML configuration file" arg:"-c,--config"`
	Quiet  bool   `help:"Do not show a progress bar" arg:"-q,--quiet"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
Aggregate learning curve scores from the runs of a results directory.`, name, author, version)
}

func main() {
	var args args
	p, err := arg.NewParser(arg.Config{Program: name}, &args)
	if err != nil {
		log.Fatalln(err)
	}
	switch err := p.Parse(knownArgs(os.Args[1:])); err {
	case nil:
	case arg.ErrHelp:
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	case arg.ErrVersion:
		fmt.Println(version)
		os.Exit(0)
	default:
		p.Fail(err.Error())
	}

	c := lcagg.DefaultConfig()
	if len(args.Config) > 0 {
		c, err = lcagg.LoadConfig(args.Config)
		if err != nil {
			log.Fatalln(err)
		}
	}

	var components []func() interface{}
	if !args.Quiet {
		components = append(components, lcagg.Progress(os.Stderr))
	}

	gp, err := lcagg.NewPipelineFromConfig(args.ResDir, c, components...)
	if err != nil {
		log.Fatalln(err)
	}

	results := make(chan pipeline.Result)
	go gp.Execute(results)

	for r := range results {
		switch r.Type {
		case pipeline.Aggregation:
			fmt.Println("Training set sizes:", r.Sizes)
		case pipeline.Output, pipeline.Plot:
			for _, path := range r.Paths {
				log.Printf("wrote %s\n", path)
			}
		case pipeline.Error:
			log.Fatalln(r.Error)
		case pipeline.Done:
			log.Println("done")
		}
	}
}
