package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdin is read by promptYesNo.
var stdin io.Reader = os.Stdin

// isTerminal checks if stdin is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptYesNo asks the user a yes/no question, defaulting to no.
// Returns error if stdin is not a TTY and cannot read input.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, fmt.Errorf("cannot prompt for input: stdin is not a TTY. Use --yes flag to skip interactive prompts")
	}
	return readYesNo(stdin, os.Stdout, question)
}

func readYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, fmt.Errorf("read user input: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
