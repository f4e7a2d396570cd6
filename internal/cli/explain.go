package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/griffithind/runcompose/internal/convert"
	"github.com/griffithind/runcompose/internal/parse"
	"github.com/griffithind/runcompose/internal/ui"
	"github.com/griffithind/runcompose/internal/util"
)

var explainOpts convertOptions

var explainCmd = &cobra.Command{
	Use:   "explain [docker run command...]",
	Short: "Show how each token of a docker run command is interpreted",
	Long: `Show how runcompose reads a docker run command without writing a
compose file.

Every token is listed with the rule that consumed it. Tokens marked
"unsupported" are dropped from the output. Published ports, volumes and
environment entries are broken down so mistakes are easy to spot.`,
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args, explainOpts.file)
	if err != nil {
		return err
	}

	s, err := explainOpts.resolve(cmd.Flags(), cfg)
	if err != nil {
		return err
	}

	res, err := convert.Run(raw, s.convert)
	if err != nil {
		return err
	}
	rc := res.Command

	ui.Println(ui.FormatLabel("Service", ui.Bold(rc.ServiceName)))
	if rc.Image != "" {
		ui.Println(ui.FormatLabel("Image", rc.Image))
	} else {
		ui.Println(ui.FormatCheck(ui.CheckResultWarn, "No image found"))
	}
	ui.Println()

	if err := ui.RenderTable([]string{"#", "Token", "Value", "Rule"}, stepRows(rc.Steps)); err != nil {
		return err
	}

	for _, flag := range rc.Dangling {
		ui.Println(ui.FormatCheck(ui.CheckResultFail, ui.Code(flag)+" has no value"))
	}

	if len(rc.Ports) > 0 {
		ui.Println()
		ui.Println(ui.Bold("Ports"))
		for _, spec := range rc.Ports {
			bindings, err := parse.ParsePortBinding(spec)
			if err != nil {
				ui.Println(ui.FormatCheck(ui.CheckResultWarn, spec+": "+err.Error()))
				continue
			}
			for _, b := range bindings {
				ui.Println(ui.FormatCheck(ui.CheckResultPass, b.String()))
			}
		}
	}

	if len(rc.Volumes) > 0 {
		ui.Println()
		ui.Println(ui.Bold("Volumes"))
		rows := make([][]string, 0, len(rc.Volumes))
		for _, spec := range rc.Volumes {
			m := parse.ParseVolume(spec)
			if m == nil {
				continue
			}
			declared := ""
			if _, ok := m.NamedVolume(); ok {
				declared = ui.Mark(ui.CheckResultPass)
			}
			rows = append(rows, []string{m.Source, m.Target, string(m.Type), m.Mode, declared})
		}
		if err := ui.RenderTable([]string{"Source", "Target", "Type", "Mode", "Declared"}, rows); err != nil {
			return err
		}
	}

	if len(rc.Environment) > 0 {
		ui.Println()
		ui.Println(ui.Bold("Environment"))
		for _, entry := range rc.Environment {
			key, _, ok := util.SplitEnvEntry(entry)
			if ok {
				ui.Println(ui.FormatCheck(ui.CheckResultPass, key))
			} else {
				ui.Println(ui.FormatCheck(ui.CheckResultSkip, key+" (no value)"))
			}
		}
	}

	return nil
}

func stepRows(steps []parse.Step) [][]string {
	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		rule := s.Rule
		if rule == parse.RuleUnsupported {
			rule = ui.Dim(rule)
		}
		rows = append(rows, []string{strconv.Itoa(s.Index), s.Token, s.Value, rule})
	}
	return rows
}

func init() {
	addConversionFlags(explainCmd, &explainOpts)
	explainCmd.Flags().SetInterspersed(false)
}
