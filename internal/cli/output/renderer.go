// Package output renders checking results for terminals and scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/alxckn/packwerk-extensions/internal/runner"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

var (
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	strictStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Renderer writes run results to an output stream.
type Renderer struct {
	out  io.Writer
	err  io.Writer
	mode Mode
}

// NewRenderer creates a renderer for the given mode. Unknown modes fall
// back to text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode != ModeJSON {
		mode = ModeText
	}
	return &Renderer{out: out, err: errOut, mode: mode}
}

// Result renders a full checking run.
func (r *Renderer) Result(res *runner.Result) error {
	if r.mode == ModeJSON {
		return r.renderJSON(res)
	}
	return r.renderText(res)
}

func (r *Renderer) renderText(res *runner.Result) error {
	reported := res.Reported()

	for _, o := range reported {
		fmt.Fprintln(r.out, fileStyle.Render(o.Reference.Path))
		if o.Strict && o.Listed {
			fmt.Fprintln(r.out, strictStyle.Render("[strict] recorded in package_todo.yml, but the source package enforces privacy strictly"))
		}
		fmt.Fprintln(r.out, o.Message)
		fmt.Fprintln(r.out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"Packages", "Constants", "Files", "Reported", "Grandfathered"})
	t.AppendRow(table.Row{res.Packages, res.Constants, res.FilesScanned, len(reported), res.Grandfathered()})
	t.Render()

	if len(reported) == 0 {
		fmt.Fprintln(r.out, successStyle.Render("No offenses detected"))
	} else {
		fmt.Fprintln(r.out, failureStyle.Render(fmt.Sprintf("%d offense(s) detected", len(reported))))
	}
	return nil
}

// jsonViolation is the machine-readable shape of one reported violation.
type jsonViolation struct {
	Kind        string `json:"kind"`
	Constant    string `json:"constant"`
	File        string `json:"file"`
	Definition  string `json:"definition"`
	Source      string `json:"source_package"`
	Destination string `json:"destination_package"`
	Listed      bool   `json:"listed"`
	Strict      bool   `json:"strict"`
	Message     string `json:"message"`
}

type jsonResult struct {
	Packages      int             `json:"packages"`
	Constants     int             `json:"constants"`
	Files         int             `json:"files_scanned"`
	Grandfathered int             `json:"grandfathered"`
	Violations    []jsonViolation `json:"violations"`
}

func (r *Renderer) renderJSON(res *runner.Result) error {
	out := jsonResult{
		Packages:      res.Packages,
		Constants:     res.Constants,
		Files:         res.FilesScanned,
		Grandfathered: res.Grandfathered(),
		Violations:    []jsonViolation{},
	}
	for _, o := range res.Reported() {
		out.Violations = append(out.Violations, jsonViolation{
			Kind:        string(o.Kind),
			Constant:    o.Reference.ConstantName,
			File:        o.Reference.Path,
			Definition:  o.Reference.ConstantLocation,
			Source:      o.Reference.Source.Name,
			Destination: o.Reference.Destination.Name,
			Listed:      o.Listed,
			Strict:      o.Strict,
			Message:     o.Message,
		})
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.err, failureStyle.Render(fmt.Sprintf("Error: %v", err)))
}
