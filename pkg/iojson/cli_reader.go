package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON document named by a CLI flag. A value of "-" reads
// stdin.
type FileReader[T any] struct {
	Name  string // flag name, defaults to "file"
	Usage string

	fileFlagValue string
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	name := fr.Name
	if name == "" {
		name = "file"
	}
	usage := fr.Usage
	if usage == "" {
		usage = "path to JSON file ('-' reads stdin)"
	}
	return &cli.StringFlag{
		Name:        name,
		Aliases:     []string{"f"},
		Usage:       usage,
		Destination: &fr.fileFlagValue,
	}
}

// Provided reports whether the flag was set.
func (fr *FileReader[T]) Provided() bool { return fr.fileFlagValue != "" }

// Path returns the flag value.
func (fr *FileReader[T]) Path() string { return fr.fileFlagValue }

// SetPath overrides the flag value.
func (fr *FileReader[T]) SetPath(path string) { fr.fileFlagValue = path }

// Read decodes the file, or stdin when the path is "-".
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	if fr.fileFlagValue != "-" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return Decode[T](f)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return input, fmt.Errorf("no input provided (stdin is a terminal); pass a file path or pipe JSON input")
	}
	return Decode[T](os.Stdin)
}

// Decode reads a single JSON document of type T from r.
func Decode[T any](r io.Reader) (T, error) {
	var input T
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}
