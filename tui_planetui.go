package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	tui "github.com/network-plane/planetui"

	"raidcalc/capacity"
	"raidcalc/config"
	"raidcalc/logger"
)

const sessionPlanKey = "plan"

// shellPlan is the calculation being edited in a shell session.
type shellPlan struct {
	scheme string
	drives []float64
	topo   *capacity.Topology
}

func newShellPlan(settings config.Settings) *shellPlan {
	return &shellPlan{scheme: settings.DefaultScheme}
}

func (p *shellPlan) setScheme(id string) error {
	if _, err := capacity.Lookup(id); err != nil {
		return err
	}
	p.scheme = id
	return nil
}

func (p *shellPlan) addDrives(sizeArg, countArg string) (int, error) {
	size, err := parseSize(sizeArg)
	if err != nil {
		return 0, err
	}
	count := 1
	if countArg != "" {
		count, err = strconv.Atoi(countArg)
		if err != nil || count <= 0 {
			return 0, fmt.Errorf("invalid drive count %q", countArg)
		}
	}
	p.drives = append(p.drives, uniformDrives(count, size)...)
	return count, nil
}

func (p *shellPlan) removeDrive(indexArg string) (float64, error) {
	idx, err := strconv.Atoi(indexArg)
	if err != nil || idx < 1 || idx > len(p.drives) {
		return 0, fmt.Errorf("no drive %q, have %d drives", indexArg, len(p.drives))
	}
	removed := p.drives[idx-1]
	p.drives = append(p.drives[:idx-1], p.drives[idx:]...)
	return removed, nil
}

func (p *shellPlan) setTopology(groupsArg, perGroupArg string) error {
	if groupsArg == "off" || groupsArg == "none" {
		p.topo = nil
		return nil
	}
	groups, err := strconv.Atoi(groupsArg)
	if err != nil {
		return fmt.Errorf("invalid vdev count %q", groupsArg)
	}
	perGroup, err := strconv.Atoi(perGroupArg)
	if err != nil {
		return fmt.Errorf("invalid drives per vdev %q", perGroupArg)
	}
	if groups <= 0 || perGroup <= 0 {
		return capacity.ErrInvalidTopology
	}
	p.topo = &capacity.Topology{Groups: groups, PerGroup: perGroup}
	return nil
}

func (p *shellPlan) describe() []string {
	lines := []string{fmt.Sprintf("Scheme: %s", p.scheme)}
	if len(p.drives) == 0 {
		lines = append(lines, "Drives: none")
	} else {
		lines = append(lines, fmt.Sprintf("Drives: %d (%s)", len(p.drives), capacity.FormatDriveList(p.drives)))
	}
	if p.topo != nil {
		lines = append(lines, fmt.Sprintf("Topology: %d vdevs × %d drives each", p.topo.Groups, p.topo.PerGroup))
	}
	return lines
}

func (p *shellPlan) report() ([]string, error) {
	req := calcRequest{Scheme: p.scheme, Drives: p.drives, Topology: p.topo}
	res, err := req.calculate()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	if err := renderReport(&b, res, p.drives, true, defaultWidth); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n"), nil
}

// shellCommand is both the factory and the command for one shell verb.
type shellCommand struct {
	spec tui.CommandSpec
	run  func(rt tui.CommandRuntime, input tui.CommandInput, plan *shellPlan) error
}

func (c *shellCommand) Spec() tui.CommandSpec { return c.spec }

func (c *shellCommand) New(rt tui.CommandRuntime) (tui.Command, error) { return c, nil }

func (c *shellCommand) Execute(rt tui.CommandRuntime, input tui.CommandInput) tui.CommandResult {
	if err := c.run(rt, input, sessionPlan(rt)); err != nil {
		rt.Output().Error(err.Error())
		return tui.CommandResult{
			Status: tui.StatusSuccess,
			Error:  &tui.CommandError{Message: err.Error()},
		}
	}
	return tui.CommandResult{Status: tui.StatusSuccess}
}

var shellSettings = config.Defaults()

// sessionPlan returns the plan stored in the session, creating it on first use.
func sessionPlan(rt tui.CommandRuntime) *shellPlan {
	if v, ok := rt.Session().Get(sessionPlanKey); ok {
		if plan, ok := v.(*shellPlan); ok {
			return plan
		}
	}
	plan := newShellPlan(shellSettings)
	rt.Session().Set(sessionPlanKey, plan)
	return plan
}

func infoLines(rt tui.CommandRuntime, lines []string) {
	for _, line := range lines {
		rt.Output().Info(line)
	}
}

func shellCommands() []*shellCommand {
	return []*shellCommand{
		{
			spec: tui.CommandSpec{
				Name:        "scheme",
				Summary:     "Select the redundancy scheme",
				Description: "Selects the scheme used by calc, e.g. raid5, shr2 or raidz2.",
				Context:     "plan",
				Aliases:     []string{"use"},
				Args: []tui.ArgSpec{
					{Name: "id", Type: tui.ArgTypeString, Required: true, Description: "Scheme identifier"},
				},
			},
			run: func(rt tui.CommandRuntime, input tui.CommandInput, plan *shellPlan) error {
				if err := plan.setScheme(input.Args.String("id")); err != nil {
					return err
				}
				rt.Output().Info(fmt.Sprintf("Scheme set to %s", plan.scheme))
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "schemes",
				Summary:     "List available schemes",
				Description: "Lists every scheme with its minimum drives and fault tolerance.",
				Context:     "plan",
				Aliases:     []string{"ls"},
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, _ *shellPlan) error {
				for _, s := range capacity.Default.Schemes() {
					rt.Output().Info(fmt.Sprintf("%-11s %-23s min %d, survives %d", s.ID, s.Name, s.MinDrives, s.FaultTolerance))
				}
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "topology",
				Summary:     "Split drives into vdevs",
				Description: "Sets the vdev count and drives per vdev for ZFS schemes, or 'topology off'.",
				Context:     "plan",
				Aliases:     []string{"vdevs"},
				Args: []tui.ArgSpec{
					{Name: "groups", Type: tui.ArgTypeString, Required: true, Description: "Number of vdevs, or off"},
					{Name: "per-group", Type: tui.ArgTypeString, Required: false, Description: "Drives per vdev"},
				},
			},
			run: func(rt tui.CommandRuntime, input tui.CommandInput, plan *shellPlan) error {
				if err := plan.setTopology(input.Args.String("groups"), input.Args.String("per-group")); err != nil {
					return err
				}
				infoLines(rt, plan.describe())
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "show",
				Summary:     "Show the current plan",
				Description: "Shows the selected scheme, drives and topology.",
				Context:     "plan",
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, plan *shellPlan) error {
				infoLines(rt, plan.describe())
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "calc",
				Summary:     "Calculate capacity",
				Description: "Calculates usable, raw and wasted capacity for the current plan.",
				Context:     "plan",
				Aliases:     []string{"c", "run"},
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, plan *shellPlan) error {
				lines, err := plan.report()
				if err != nil {
					logger.Warn("invalid request", "scheme", plan.scheme, "error", err.Error())
					return err
				}
				infoLines(rt, lines)
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "drives",
				Summary:     "Edit the drive list",
				Description: "Switches to the drives context for adding and removing drives.",
				Context:     "plan",
				Aliases:     []string{"edit"},
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, plan *shellPlan) error {
				rt.NavigateTo("drives", nil)
				infoLines(rt, plan.describe())
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "list",
				Summary:     "List drives",
				Description: "Lists the drives of the current plan.",
				Context:     "drives",
				Aliases:     []string{"ls"},
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, plan *shellPlan) error {
				if len(plan.drives) == 0 {
					rt.Output().Warn("No drives added")
					return nil
				}
				for i, size := range plan.drives {
					rt.Output().Info(fmt.Sprintf("%d. %s (%s)", i+1, capacity.FormatSize(size),
						capacity.FormatCapacity(capacity.ToBinaryUnits(size), false)))
				}
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "add",
				Summary:     "Add drives",
				Description: "Adds count drives of the given size in TB, e.g. 'add 12 4'.",
				Context:     "drives",
				Args: []tui.ArgSpec{
					{Name: "size", Type: tui.ArgTypeString, Required: true, Description: "Drive size in TB"},
					{Name: "count", Type: tui.ArgTypeString, Required: false, Description: "Number of drives"},
				},
			},
			run: func(rt tui.CommandRuntime, input tui.CommandInput, plan *shellPlan) error {
				n, err := plan.addDrives(input.Args.String("size"), input.Args.String("count"))
				if err != nil {
					return err
				}
				rt.Output().Info(fmt.Sprintf("Added %d drive(s), %d total", n, len(plan.drives)))
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "remove",
				Summary:     "Remove a drive",
				Description: "Removes the drive at the given 1-based position.",
				Context:     "drives",
				Aliases:     []string{"rm"},
				Args: []tui.ArgSpec{
					{Name: "index", Type: tui.ArgTypeString, Required: true, Description: "Drive position"},
				},
			},
			run: func(rt tui.CommandRuntime, input tui.CommandInput, plan *shellPlan) error {
				size, err := plan.removeDrive(input.Args.String("index"))
				if err != nil {
					return err
				}
				rt.Output().Info(fmt.Sprintf("Removed %s drive, %d left", capacity.FormatSize(size), len(plan.drives)))
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "clear",
				Summary:     "Remove all drives",
				Description: "Removes every drive from the plan.",
				Context:     "drives",
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, plan *shellPlan) error {
				plan.drives = nil
				rt.Output().Info("Drive list cleared")
				return nil
			},
		},
		{
			spec: tui.CommandSpec{
				Name:        "done",
				Summary:     "Return to the plan",
				Description: "Leaves the drives context.",
				Context:     "drives",
				Aliases:     []string{"back"},
			},
			run: func(rt tui.CommandRuntime, _ tui.CommandInput, plan *shellPlan) error {
				rt.NavigateTo("plan", nil)
				infoLines(rt, plan.describe())
				return nil
			},
		},
	}
}

// initPlanetUI initializes planetui with commands and contexts
func initPlanetUI() {
	tui.RegisterContext("plan", "Scheme selection and capacity calculation")
	tui.RegisterContext("drives", "Drive list editing")

	for _, cmd := range shellCommands() {
		tui.RegisterCommand(cmd)
	}
}

// runShell runs the planetui-based shell
func runShell(settings config.Settings) error {
	shellSettings = settings
	initPlanetUI()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "raidcalc> ",
		HistoryFile:     settings.HistoryFile,
		AutoComplete:    nil,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	// starts in the plan context
	if err := tui.Run(rl); err != nil && !errors.Is(err, readline.ErrInterrupt) {
		return err
	}
	return nil
}
