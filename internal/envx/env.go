// Package envx resolves configuration variables from the process
// environment, falling back to a dotenv file.
package envx

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Lookup returns a LookupFunc that prefers the real environment and then the
// variables of the dotenv file at path. A missing file is not an error; an
// empty path skips the file.
func Lookup(path string) (LookupFunc, error) {
	vars := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			vars = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}
