package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	identity "taskmanager/internal/identity/domain/entities"
	"taskmanager/internal/tasks/domain/entities"
)

// Форматы вывода.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output печатает результаты команд в выбранном формате.
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput создает Output, пишущий результаты в out, а ошибки в errOut.
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print выводит данные в настроенном формате.
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintError выводит ошибку одной строкой.
func (o *Output) PrintError(err error) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errOut, string(data))
		return
	}
	fmt.Fprintf(o.errOut, "Error: %s\n", err)
}

// PrintMessage выводит простое сообщение.
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
		return
	}
	fmt.Fprintln(o.out, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *identity.IdentityRef:
		fmt.Fprintf(o.out, "Identity: %s (%s)\n", v.Username, v.ID)
	case *entities.Task:
		o.printTask(v)
	case []*entities.Task:
		o.printTasks(v)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printTask(t *entities.Task) {
	fmt.Fprintf(o.out, "Task: %s\n", t.ID)
	fmt.Fprintf(o.out, "Title: %s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(o.out, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(o.out, "Status: %s\n", t.Status)
	fmt.Fprintf(o.out, "Created: %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(o.out, "Updated: %s\n", t.UpdatedAt.Format(time.RFC3339))
}

func (o *Output) printTasks(tasks []*entities.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(o.out, "No tasks")
		return
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Status, t.Title)
	}
	_ = w.Flush()
}
