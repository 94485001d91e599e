package main

import "raidcalc/capacity"

var (
	appversion = "0.5.0"
	// GitCommit is set at build time with -ldflags "-X main.GitCommit=...".
	GitCommit string
)

const (
	exitFailure    = 1
	exitValidation = 2
)

const (
	defaultWidth = 80
	minBarWidth  = 10
	maxBarWidth  = 50
)

// calcRequest is one resolved capacity calculation.
type calcRequest struct {
	Scheme   string
	Drives   []float64
	Topology *capacity.Topology
}

// calcInput holds the raw values of the calc command line.
type calcInput struct {
	Scheme   string
	Drives   []string
	Count    int
	Size     string
	Groups   int
	PerGroup int
	File     string
}

const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
)

// Unit represents a data size unit with its name and threshold.
type Unit struct {
	Name      string
	Threshold int64
}

// Predefined units in descending order.
var units = []Unit{
	{"GiB", gb},
	{"MiB", mb},
	{"KiB", kb},
	{"bytes", 1},
}
