package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roach88/fissure/internal/engine"
)

// sampleInputName labels the built-in input in output and logs.
const sampleInputName = "<sample>"

// openInput resolves the optional input argument: no argument selects the
// built-in sample, "-" reads stdin, anything else is a file path.
// The returned name is used in messages.
func openInput(args []string, stdin io.Reader) (io.ReadCloser, string, error) {
	if len(args) == 0 {
		return io.NopCloser(strings.NewReader(engine.SampleInput)), sampleInputName, nil
	}

	name := args[0]
	if name == "-" {
		return io.NopCloser(stdin), "<stdin>", nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, name, fmt.Errorf("open input: %w", err)
	}
	return f, name, nil
}
