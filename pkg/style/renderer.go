package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/adhere/pkg/rules"
)

// Renderer produces terminal output for descriptor sets and bundles
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer; plain indicates color-free output
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// RenderDescriptorTable renders all descriptors as a table: id, scope,
// patterns, priority.
func (r *Renderer) RenderDescriptorTable(descriptors []rules.Descriptor) string {
	if len(descriptors) == 0 {
		return r.muted("No rules loaded")
	}

	data := pterm.TableData{{"ID", "SCOPE", "PATTERNS", "PRIORITY"}}
	for _, d := range descriptors {
		patterns := strings.Join(d.Patterns, ", ")
		if d.Scope == rules.ScopeUniversal {
			patterns = "(always active)"
		}
		data = append(data, []string{
			d.ID,
			string(d.Scope),
			patterns,
			fmt.Sprintf("%d", d.Priority),
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if !r.color {
		table = table.WithBoxed(false)
		pterm.DisableColor()
		defer pterm.EnableColor()
	}
	out, err := table.Srender()
	if err != nil {
		// Srender only fails on malformed table data we built ourselves
		return fmt.Sprintf("%v", data)
	}
	return out
}

// RenderActivation renders the activated rules for one path
func (r *Renderer) RenderActivation(path string, activated []rules.Descriptor) string {
	var b strings.Builder

	title := path
	if title == "" {
		title = "(empty path)"
	}
	b.WriteString(r.title(title) + "\n")

	if len(activated) == 0 {
		b.WriteString("  " + r.muted("no guidance applies") + "\n")
		return b.String()
	}

	for _, d := range activated {
		switch d.Scope {
		case rules.ScopeUniversal:
			b.WriteString(fmt.Sprintf("  %s %s\n", r.universal("●"), r.ruleID(d.ID)))
		case rules.ScopeConditional:
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				r.pattern("○"), r.ruleID(d.ID),
				r.muted(strings.Join(d.Patterns, ", "))))
		}
	}
	return b.String()
}

// RenderError renders an error line for stderr
func (r *Renderer) RenderError(err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if !r.color {
		return msg
	}
	return ErrorStyle.Render(msg)
}

// RenderWarning renders a warning line for stderr
func (r *Renderer) RenderWarning(msg string) string {
	if !r.color {
		return "Warning: " + msg
	}
	return WarnStyle.Render("Warning: " + msg)
}

func (r *Renderer) title(s string) string {
	if !r.color {
		return s
	}
	return TitleStyle.Render(s)
}

func (r *Renderer) ruleID(s string) string {
	if !r.color {
		return s
	}
	return RuleIDStyle.Render(s)
}

func (r *Renderer) pattern(s string) string {
	if !r.color {
		return s
	}
	return PatternStyle.Render(s)
}

func (r *Renderer) universal(s string) string {
	if !r.color {
		return s
	}
	return UniversalStyle.Render(s)
}

func (r *Renderer) muted(s string) string {
	if !r.color {
		return s
	}
	return MutedStyle.Render(s)
}
