package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/turkeybot/internal/report"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == report.FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == report.FormatJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case BoardResult:
		o.printBoard(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// BoardResult is a generated board in both wire and grid form
type BoardResult struct {
	Board string   `json:"board"`
	Rows  []string `json:"rows"`
}

func (o *Output) printBoard(b BoardResult) {
	_, _ = fmt.Fprintln(o.out, "   1 2 3 4 5 6 7 8 9 10")
	for i, row := range b.Rows {
		_, _ = fmt.Fprintf(o.out, "%2d", i+1)
		for _, c := range row {
			_, _ = fmt.Fprintf(o.out, " %c", c)
		}
		_, _ = fmt.Fprintln(o.out)
	}
}
