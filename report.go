package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/template"

	"raidcalc/capacity"
)

const reportTmpl = `Scheme:          {{.Result.Scheme.Name}} ({{.Result.Scheme.ID}})
                 {{.Result.Scheme.Description}}
Usable Capacity: {{capacity .Result.Usable}}
Raw Capacity:    {{capacity .Result.Raw}}
Efficiency:      {{percent .Result.Efficiency}} ({{capacity .Result.Wasted}} used for redundancy)
{{.Bar}}
Fault Tolerance: {{tolerance .Result.Scheme.FaultTolerance}}
Performance:     {{performance .Result.Scheme}}
Drives:          {{len .Drives}} drive{{if gt (len .Drives) 1}}s{{end}}: {{drivelist .Drives}}
{{- with .Result.Topology}}
                 {{.Groups}} vdevs × {{.PerGroup}} drives each
{{- end}}
`

type reportData struct {
	Result capacity.Result
	Drives []float64
	Bar    string
}

// renderReport writes the capacity report for res. showBoth adds the TB
// equivalent next to every TiB figure; width sizes the capacity bar.
func renderReport(w io.Writer, res capacity.Result, drives []float64, showBoth bool, width int) error {
	funcs := template.FuncMap{
		"capacity":    func(tib float64) string { return capacity.FormatCapacity(tib, showBoth) },
		"percent":     capacity.FormatPercentage,
		"tolerance":   capacity.FaultToleranceText,
		"performance": capacity.PerformanceText,
		"drivelist":   capacity.FormatDriveList,
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	data := reportData{
		Result: res,
		Drives: drives,
		Bar:    capacityBar(res, width),
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// capacityBar draws the usable share of raw capacity, e.g.
// "[########..] 80.0% usable of 18.19 TiB".
func capacityBar(res capacity.Result, width int) string {
	suffix := fmt.Sprintf(" %s usable of %s", capacity.FormatPercentage(res.Efficiency), capacity.FormatCapacity(res.Raw, false))

	barWidth := width - len(suffix) - 2
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	filled := int(math.Round(res.Efficiency * float64(barWidth)))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]" + suffix
}
