package spoiler

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pixil98/go-multifill/internal/seed"
)

const DefaultWidth = 80

// Render produces the human readable spoiler log for a generation result.
func Render(r *seed.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Seed: %s\nRun: %s\nStatus: %s\n", r.Seed, r.RunID, r.Status)
	if r.Cause != "" {
		fmt.Fprintf(&b, "Cause: %s\n", r.Cause)
	}
	if r.Error != "" {
		b.WriteString(block("Error", r.Error))
	}
	if r.Freed > 0 {
		fmt.Fprintf(&b, "Accessibility corrections: %d\n", r.Freed)
	}

	names := map[int]string{}
	for _, p := range r.Players {
		names[p.ID] = p.Name
	}

	for _, p := range r.Players {
		fmt.Fprintf(&b, "\n%s (Player %d, %s accessibility)\n", p.Name, p.ID, p.Accessibility)

		var corrections int
		if found, err := p.SlotData.Get("corrections", &corrections); found && err == nil && corrections > 0 {
			fmt.Fprintf(&b, "  corrected placements: %d\n", corrections)
		}

		for _, pl := range r.Placed {
			if pl.Player != p.ID {
				continue
			}
			owner := pl.ItemPlayer
			if owner == 0 {
				owner = pl.Player
			}
			fmt.Fprintf(&b, "  %s: %s (%s)\n", pl.Location, pl.Item, names[owner])
		}
	}

	if len(r.Unplaced) > 0 {
		items := make([]string, len(r.Unplaced))
		for i, it := range r.Unplaced {
			items[i] = fmt.Sprintf("%s (%s)", it.Name, names[it.Player])
		}
		b.WriteString("\n")
		b.WriteString(block("Unplaced", strings.Join(items, ", ")))
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			b.WriteString(indent.String(Wrap("- "+w), 2))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Wrap word-wraps text to DefaultWidth.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth-2)
}

func block(title, body string) string {
	return fmt.Sprintf("%s:\n%s\n", title, indent.String(Wrap(body), 2))
}
