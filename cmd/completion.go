package cmd

import (
	"flag"

	"github.com/etnz/mononomics/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors for flags whose values are known in advance.
var predictors = map[string]complete.Predictor{
	"ledger-file": predict.Files("*.json"),
	"k":           predict.Set{"income", "expense"},
	"kind":        predict.Set{"income", "expense"},
	"currency":    predict.Set{"PHP", "USD", "EUR", "GBP", "JPY"},
}

// Completion describes the commands and flags of mono for shell completion.
//
// Install it in bash with:
//
//	COMP_INSTALL=1 mono
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range append(Commands, subcommands.HelpCommand(), subcommands.FlagsCommand(), subcommands.CommandsCommand()) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		switch c.Name() {
		case "topic":
			sub.Args = predict.Set(topicNames())
		case "help":
			sub.Args = predict.Set(commandNames())
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := predictors[fl.Name]; ok {
			m[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = predict.Nothing
			return
		}
		m[fl.Name] = predict.Something
	})
	return m
}

func commandNames() []string {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.Name())
	}
	return names
}

func topicNames() []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}
