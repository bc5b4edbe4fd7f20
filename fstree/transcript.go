package fstree

import (
	"fmt"
	"strconv"
	"strings"
)

// Op identifies what a transcript line does.
type Op uint8

const (
	OpBlank  Op = iota // empty line
	OpCdRoot           // $ cd /
	OpCdUp             // $ cd ..
	OpCd               // $ cd <name>
	OpLs               // $ ls
	OpDir              // dir <name>
	OpFile             // <size> <name>
)

func (o Op) String() string {
	switch o {
	case OpBlank:
		return "blank"
	case OpCdRoot:
		return "cd /"
	case OpCdUp:
		return "cd .."
	case OpCd:
		return "cd"
	case OpLs:
		return "ls"
	case OpDir:
		return "dir"
	case OpFile:
		return "file"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Command is a single parsed transcript line.
type Command struct {
	Op   Op
	Name string // set for OpCd, OpDir and OpFile
	Size int64  // set for OpFile
}

// ParseLine classifies one transcript line. Tokens are separated by single
// spaces; a trailing carriage return is ignored. Errors wrap ErrMalformedLine
// or ErrUnknownCommand.
func ParseLine(line string) (Command, error) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" {
		return Command{Op: OpBlank}, nil
	}
	tokens := strings.Split(line, " ")
	for _, tok := range tokens {
		if tok == "" {
			return Command{}, fmt.Errorf("%w: empty token in %q", ErrMalformedLine, line)
		}
	}

	switch tokens[0] {
	case "$":
		return parseShellCommand(tokens)
	case "dir":
		if len(tokens) != 2 {
			return Command{}, fmt.Errorf("%w: dir listing wants 2 tokens, got %d", ErrMalformedLine, len(tokens))
		}
		if err := validateName(tokens[1]); err != nil {
			return Command{}, err
		}
		return Command{Op: OpDir, Name: tokens[1]}, nil
	}

	if len(tokens) != 2 {
		return Command{}, fmt.Errorf("%w: file listing wants 2 tokens, got %d", ErrMalformedLine, len(tokens))
	}
	size, err := parseSize(tokens[0])
	if err != nil {
		return Command{}, err
	}
	if err := validateName(tokens[1]); err != nil {
		return Command{}, err
	}
	return Command{Op: OpFile, Name: tokens[1], Size: size}, nil
}

func parseShellCommand(tokens []string) (Command, error) {
	if len(tokens) < 2 {
		return Command{}, fmt.Errorf("%w: prompt without a command", ErrMalformedLine)
	}
	switch tokens[1] {
	case "ls":
		if len(tokens) != 2 {
			return Command{}, fmt.Errorf("%w: ls takes no arguments", ErrMalformedLine)
		}
		return Command{Op: OpLs}, nil
	case "cd":
		if len(tokens) != 3 {
			return Command{}, fmt.Errorf("%w: cd wants exactly one argument, got %d", ErrMalformedLine, len(tokens)-2)
		}
		switch target := tokens[2]; target {
		case "/":
			return Command{Op: OpCdRoot}, nil
		case "..":
			return Command{Op: OpCdUp}, nil
		default:
			if err := validateName(target); err != nil {
				return Command{}, err
			}
			return Command{Op: OpCd, Name: target}, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[1])
}

// parseSize accepts only plain decimal digits, so signs are rejected.
func parseSize(tok string) (int64, error) {
	size, err := strconv.ParseUint(tok, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q is not a non-negative integer", ErrMalformedLine, tok)
	}
	return int64(size), nil
}

func validateName(name string) error {
	if name == "." || name == ".." || strings.Contains(name, "/") {
		return fmt.Errorf("%w: invalid entry name %q", ErrMalformedLine, name)
	}
	return nil
}

// placeholderName picks the name a permissive build gives to a malformed
// listing line, or "" if the line cannot name anything.
func placeholderName(line string) string {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || tokens[0] == "$" {
		return ""
	}
	name := tokens[len(tokens)-1]
	if validateName(name) != nil {
		return ""
	}
	return name
}
