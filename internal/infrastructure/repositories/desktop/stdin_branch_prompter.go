package desktop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// StdinBranchPrompter asks for a branch on a terminal. An empty line keeps
// nothing (cancel), matching a dismissed dialog.
type StdinBranchPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewStdinBranchPrompter(in io.Reader, out io.Writer) *StdinBranchPrompter {
	return &StdinBranchPrompter{in: in, out: out}
}

func (p *StdinBranchPrompter) PromptBranch(ctx context.Context, current string) (string, bool, error) {
	if _, err := fmt.Fprintf(p.out, "Branch [%s]: ", current); err != nil {
		return "", false, err
	}

	type answer struct {
		line string
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case got := <-answers:
		if got.err != nil && !errors.Is(got.err, io.EOF) {
			return "", false, got.err
		}
		branch := strings.TrimSpace(got.line)
		if branch == "" {
			return "", false, nil
		}
		return branch, true, nil
	}
}
