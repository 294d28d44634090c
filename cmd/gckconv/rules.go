package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/gck"
)

func (a *app) rulesCmd() *cobra.Command {
	var classify []string
	cmd := &cobra.Command{
		Use:   "rules [library]",
		Short: "List the compiled rules of a feature library",
		Long: `Compiles a rule library and lists its rules in order, one per line as
pattern and type. With --classify, prints the type each given name would
get instead. Later rules override earlier ones.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Library
			if len(args) == 1 {
				path = args[0]
			}
			rules, err := gck.LoadLibrary(path)
			if err != nil {
				return err
			}
			if len(classify) == 0 {
				fmt.Fprint(a.stdout, rules)
				return nil
			}
			for _, name := range classify {
				t, ok := rules.Classify(name)
				if !ok {
					fmt.Fprintf(a.stdout, "%s\t(no match)\n", name)
					continue
				}
				fmt.Fprintf(a.stdout, "%s\t%s\n", name, t)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&classify, "classify", nil, "Feature name to classify (repeatable)")
	return cmd
}
