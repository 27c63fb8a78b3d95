package main

import (
	"fmt"
	"os"

	"github.com/nihei9/ptgen/automaton"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var describeFlags = struct {
	summary *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar file path>",
		Short:   "Print the rules and the states of a grammar in readable format",
		Example: `  ptgen describe grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	describeFlags.summary = cmd.Flags().Bool("summary", false, "print only the summary")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	m, diag := automaton.Generate(gram)
	if diag.HasErrors() {
		diag.Errors.Sort()
		for _, e := range diag.Errors {
			e.SourceName = args[0]
		}
		return diag.Errors
	}

	if !*describeFlags.summary {
		err = m.WriteDescription(os.Stdout)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
	}

	return writeSummary(m)
}

func writeSummary(m *automaton.StateMachine) error {
	tab := m.Tables()
	diag := m.Diagnostics()
	err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"rules", "states", "transitions", "shift/reduce", "reduce/reduce"},
		{
			fmt.Sprint(len(tab.Rules)),
			fmt.Sprint(len(tab.States)),
			fmt.Sprint(len(tab.Transitions) - 1),
			fmt.Sprint(diag.ShiftReduceConflicts),
			fmt.Sprint(diag.ReduceReduceConflicts),
		},
	}).Render()
	if err != nil {
		return err
	}

	conflicts := conflictsByState(m)
	if len(conflicts) == 0 {
		pterm.Info.Println("no conflicts")
		return nil
	}
	states := maps.Keys(conflicts)
	slices.Sort(states)
	data := pterm.TableData{
		{"state", "terminal", "discarded transition"},
	}
	for _, state := range states {
		for _, c := range conflicts[state] {
			name := "$default"
			if !c.Terminal.IsNil() {
				name = m.TokenName(c.Terminal)
			}
			data = append(data, []string{fmt.Sprint(state), name, m.TransitionName(c.Transition)})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func conflictsByState(m *automaton.StateMachine) map[int][]*automaton.Conflict {
	conflicts := map[int][]*automaton.Conflict{}
	for i := 0; i < m.StateCount(); i++ {
		s := m.State(i)
		if cs := s.Conflicts(); len(cs) > 0 {
			conflicts[s.Index()] = cs
		}
	}
	return conflicts
}
