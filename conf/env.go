package conf

import (
	"bytes"
	"io"
	"os"
)

// NewEnvExpandedReader replaces ${VAR} and $VAR references with values from
// the environment. Unset variables expand to the empty string.
func NewEnvExpandedReader(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))
	return bytes.NewReader([]byte(expanded)), nil
}
