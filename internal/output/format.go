// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

// DateLayout is how due dates are written and parsed on the command line.
const DateLayout = "2006-01-02"

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}" followed by "  (due YYYY-MM-DD)" when the
// task has a due date.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s%s\n", num, Checkbox(task.Completed), Title(task.Title), dueSuffix(task))
}

// FormatUser formats the signed-in user for whoami.
func FormatUser(w io.Writer, u service.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
}

// Checkbox renders the completed flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// Due returns the task's due date as YYYY-MM-DD, or "".
func Due(task service.Task) string {
	if task.DueDate == nil || task.DueDate.IsZero() {
		return ""
	}
	return task.DueDate.UTC().Format(DateLayout)
}

func dueSuffix(task service.Task) string {
	if d := Due(task); d != "" {
		return "  (due " + d + ")"
	}
	return ""
}

// Title normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func Title(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// TaskMarkdown renders a task as a Markdown document for show.
func TaskMarkdown(task service.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title(task.Title))
	status := "open"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	if d := Due(task); d != "" {
		fmt.Fprintf(&b, "- **Due:** %s\n", d)
	}
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Created:** %s\n", task.CreatedAt.UTC().Format(DateLayout))
	}
	fmt.Fprintf(&b, "- **ID:** `%s`\n", task.ID)
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}
	return b.String()
}
