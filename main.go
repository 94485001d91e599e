package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/jawher/mow.cli"

	"raidcalc/capacity"
	"raidcalc/config"
	"raidcalc/logger"
)

func versionString() string {
	if GitCommit == "" {
		return appversion
	}
	return appversion + " (" + GitCommit + ")"
}

func main() {
	app := cli.App("raidcalc", "Storage capacity planner for RAID, SHR, ZFS and Unraid layouts")
	app.Version("v version", versionString())

	var (
		verbose  = app.BoolOpt("verbose", false, "Log calculations to stderr (development format)")
		envFile  = app.StringOpt("env", ".env", "File with RAIDCALC_* defaults")
		settings config.Settings
	)

	app.Before = func() {
		var err error
		settings, err = config.LoadEnv(*envFile)
		if err != nil {
			fail(err)
		}
		if err := logger.SetType(logMode(settings, *verbose)); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to set up logging:", err)
		}
	}
	app.After = func() {
		logger.Sync()
	}

	app.Command("c calc", "Calculate capacity for a scheme and a set of drives", func(cmd *cli.Cmd) {
		cmd.Spec = "[OPTIONS] [SCHEME] [DRIVES...]"

		var (
			scheme   = cmd.StringArg("SCHEME", "", "Scheme identifier, see 'schemes'")
			drives   = cmd.StringsArg("DRIVES", nil, "Drive sizes in TB, e.g. 12 12 8 or 3x12,8")
			count    = cmd.IntOpt("n count", 0, "Number of identical drives")
			size     = cmd.StringOpt("s size", "", "Size of each identical drive in TB")
			groups   = cmd.IntOpt("g groups", 0, "Number of vdevs (ZFS mirror and RAIDZ)")
			perGroup = cmd.IntOpt("p per-group", 0, "Drives per vdev")
			file     = cmd.StringOpt("f file", "", "YAML plan file")
			save     = cmd.StringOpt("save", "", "Write the resolved plan to this YAML file")
			tb       = cmd.BoolOpt("tb", true, "Show TB equivalents next to TiB")
		)

		cmd.Action = func() {
			req, err := resolveRequest(calcInput{
				Scheme:   *scheme,
				Drives:   *drives,
				Count:    *count,
				Size:     *size,
				Groups:   *groups,
				PerGroup: *perGroup,
				File:     *file,
			}, settings)
			if err != nil {
				fail(err)
			}

			res, err := req.calculate()
			if err != nil {
				fail(err)
			}

			width, _ := terminalWidth(os.Stdout)
			if err := renderReport(os.Stdout, res, req.Drives, *tb, width); err != nil {
				fail(err)
			}

			if *save != "" {
				if err := config.SavePlan(*save, req.plan()); err != nil {
					fail(err)
				}
				fmt.Printf("Plan saved to %s\n", *save)
			}
		}
	})

	app.Command("s schemes", "List the supported schemes", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			renderSchemes(os.Stdout, capacity.Default)
		}
	})

	app.Command("cmp compare", "Compare every scheme for one set of drives", func(cmd *cli.Cmd) {
		cmd.Spec = "[OPTIONS] [DRIVES...]"

		var (
			drives = cmd.StringsArg("DRIVES", nil, "Drive sizes in TB")
			count  = cmd.IntOpt("n count", 0, "Number of identical drives")
			size   = cmd.StringOpt("s size", "", "Size of each identical drive in TB")
		)

		cmd.Action = func() {
			req, err := resolveRequest(calcInput{Drives: *drives, Count: *count, Size: *size}, settings)
			if err != nil {
				fail(err)
			}
			renderComparison(os.Stdout, compareSchemes(capacity.Default, req.Drives), req.Drives)
		}
	})

	app.Command("sw sweep", "Export capacities for every scheme, drive size and drive count", func(cmd *cli.Cmd) {
		cmd.Spec = "OUTPUTFILE [--sizes] [--max-drives] [--gzip | --bzip2 | --zip | --snappy | --s2 | --zlib | --zstd]"

		var (
			outputfile = cmd.StringArg("OUTPUTFILE", "sweep.csv", "File to write the CSV into")
			sizes      = cmd.StringOpt("sizes", "", "Comma separated drive sizes in TB (default: common sizes 1-24)")
			maxDrives  = cmd.IntOpt("max-drives", 24, "Largest drive count to include")
			gzip       = cmd.BoolOpt("gzip", false, "gzip")
			bzip       = cmd.BoolOpt("bzip2", false, "bzip2")
			zstd       = cmd.BoolOpt("zstd", false, "zstd")
			snappy     = cmd.BoolOpt("snappy", false, "snappy")
			s2         = cmd.BoolOpt("s2", false, "s2")
			zlib       = cmd.BoolOpt("zlib", false, "zlib")
			zip        = cmd.BoolOpt("zip", false, "zip")
		)

		cmd.Action = func() {
			compressMethods := map[string]*bool{
				"gzip":   gzip,
				"zlib":   zlib,
				"bzip2":  bzip,
				"snappy": snappy,
				"s2":     s2,
				"zstd":   zstd,
				"zip":    zip,
			}

			selectedMethods := make([]string, 0)
			for method, flag := range compressMethods {
				if *flag {
					selectedMethods = append(selectedMethods, method)
				}
			}
			if len(selectedMethods) > 1 {
				fmt.Println("You can only use one compression method")
				os.Exit(exitFailure)
			}
			algorithm := ""
			if len(selectedMethods) == 1 {
				algorithm = selectedMethods[0]
			}

			opts := sweepOptions{Sizes: capacity.PresetDriveSizes, MaxDrives: *maxDrives}
			if strings.TrimSpace(*sizes) != "" {
				parsed, err := parseDrives([]string{*sizes})
				if err != nil {
					fail(err)
				}
				opts.Sizes = parsed
			}

			_, live := terminalWidth(os.Stdout)
			if _, err := exportSweep(os.Stdout, live, *outputfile, algorithm, opts); err != nil {
				fail(err)
			}
		}
	})

	app.Command("t tui planner", "Interactive full-screen planner", func(cmd *cli.Cmd) {
		cmd.Spec = "[DRIVES...]"
		drives := cmd.StringsArg("DRIVES", nil, "Initial drive sizes in TB")

		cmd.Action = func() {
			initial, err := parseDrives(*drives)
			if err != nil {
				fail(err)
			}
			runTUI(settings, initial)
		}
	})

	app.Command("sh shell", "Interactive command shell", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			if err := runShell(settings); err != nil {
				fail(err)
			}
		}
	})

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err.Error())
	}
}
