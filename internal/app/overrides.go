package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix marks environment variables that feed simulation parameters:
// DYNGRID_SOLVABILITY_STEPS=800 becomes solvability_steps=800.
const EnvPrefix = "DYNGRID_"

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one override; the value must contain '='.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*l = append(*l, value)
	return nil
}

// Map folds the overrides into a map; later entries win.
func (l KVList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, val, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q is not in key=value form", kv)
		}
		out[key] = strings.TrimSpace(val)
	}
	return out, nil
}

// LoadEnvOverrides returns the prefixed variables from file and from the
// process environment, keys lower-cased with the prefix stripped. The process
// environment wins. A missing file is not an error; an empty path skips it.
func LoadEnvOverrides(prefix, file string) (map[string]string, error) {
	out := map[string]string{}
	if file != "" {
		vars, err := godotenv.Read(file)
		switch {
		case err == nil:
			collect(out, prefix, vars)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
	}
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	collect(out, prefix, env)
	return out, nil
}

func collect(dst map[string]string, prefix string, vars map[string]string) {
	for k, v := range vars {
		if !strings.HasPrefix(k, prefix) || len(k) == len(prefix) {
			continue
		}
		dst[strings.ToLower(strings.TrimPrefix(k, prefix))] = v
	}
}

func formatSeed(seed int64) string { return strconv.FormatInt(seed, 10) }
