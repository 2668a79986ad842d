// Package diff renders line diffs of rewritten files for dry-run previews.
// Diffs are computed with the sergi/go-diff library in line mode.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 2

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Added line
	LineRemoved                 // Removed line
)

// Line is a single line of a hunk. OldNum and NewNum are 1-based and zero
// when the line does not exist on that side.
type Line struct {
	OldNum  int
	NewNum  int
	Content string
	Type    LineType
}

// Hunk is a run of changed lines with surrounding context.
type Hunk struct {
	Lines []Line
}

// FileDiff is the set of hunks for one file.
type FileDiff struct {
	Path  string
	Hunks []Hunk
}

// Empty reports whether the diff has no changes.
func (d *FileDiff) Empty() bool {
	return d == nil || len(d.Hunks) == 0
}

// Engine computes line diffs.
type Engine struct {
	dmp     *diffmatchpatch.DiffMatchPatch
	context int
}

// NewEngine creates an engine that keeps contextLines of context per hunk.
func NewEngine(contextLines int) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	if contextLines < 0 {
		contextLines = 0
	}
	return &Engine{dmp: dmp, context: contextLines}
}

// Compute diffs oldContent against newContent line by line.
func (e *Engine) Compute(path, oldContent, newContent string) *FileDiff {
	a, b, lineArray := e.dmp.DiffLinesToChars(oldContent, newContent)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	return &FileDiff{
		Path:  path,
		Hunks: group(toLines(diffs), e.context),
	}
}

// toLines flattens diffmatchpatch output into numbered lines.
func toLines(diffs []diffmatchpatch.Diff) []Line {
	var lines []Line
	oldNum, newNum := 0, 0

	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, content := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldNum++
				newNum++
				lines = append(lines, Line{OldNum: oldNum, NewNum: newNum, Content: content, Type: LineContext})
			case diffmatchpatch.DiffDelete:
				oldNum++
				lines = append(lines, Line{OldNum: oldNum, Content: content, Type: LineRemoved})
			case diffmatchpatch.DiffInsert:
				newNum++
				lines = append(lines, Line{NewNum: newNum, Content: content, Type: LineAdded})
			}
		}
	}
	return lines
}

// group keeps changed lines plus up to contextLines on either side,
// merging changes whose context windows touch.
func group(lines []Line, contextLines int) []Hunk {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Type == LineContext {
			continue
		}
		lo := max(0, i-contextLines)
		hi := min(len(lines)-1, i+contextLines)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var hunks []Hunk
	var cur *Hunk
	for i, l := range lines {
		if !keep[i] {
			if cur != nil {
				hunks = append(hunks, *cur)
				cur = nil
			}
			continue
		}
		if cur == nil {
			cur = &Hunk{}
		}
		cur.Lines = append(cur.Lines, l)
	}
	if cur != nil {
		hunks = append(hunks, *cur)
	}
	return hunks
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Render formats the diff for a terminal. Colors are dropped automatically
// when stdout is not a terminal.
func Render(d *FileDiff) string {
	if d.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("--- "+d.Path) + "\n")
	sb.WriteString(headerStyle.Render("+++ "+d.Path) + "\n")

	for _, h := range d.Hunks {
		first := h.Lines[0]
		sb.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d +%d @@", first.OldNum, first.NewNum)) + "\n")
		for _, l := range h.Lines {
			switch l.Type {
			case LineAdded:
				sb.WriteString(addedStyle.Render("+"+l.Content) + "\n")
			case LineRemoved:
				sb.WriteString(removedStyle.Render("-"+l.Content) + "\n")
			default:
				sb.WriteString(" " + l.Content + "\n")
			}
		}
	}
	return sb.String()
}

// Preview computes and renders a diff with DefaultContext in one step.
func Preview(path, oldContent, newContent string) string {
	return Render(NewEngine(DefaultContext).Compute(path, oldContent, newContent))
}
