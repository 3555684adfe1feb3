package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
)

// LinePrompter asks for new names on a line based stream such as a terminal
type LinePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLinePrompter reads answers from in and writes questions to out
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{scanner: bufio.NewScanner(in), out: out}
}

// PromptRename prints the question and reads one line. EOF answers "keep the name".
func (p *LinePrompter) PromptRename(ctx context.Context, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "Rename %q? Enter a new name, or leave empty to keep it: ", filepath.Base(outputPath))
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		return "", p.scanner.Err()
	}
	return p.scanner.Text(), nil
}

// WriterNotifier prints notifications as "<title>: <message>" lines
type WriterNotifier struct {
	out io.Writer
}

// NewWriterNotifier creates a notifier writing to out
func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

// Notify writes one line
func (n *WriterNotifier) Notify(title, message string) {
	fmt.Fprintf(n.out, "%s: %s\n", title, message)
}
