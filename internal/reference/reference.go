// Package reference loads the list-mode reference values: the known
// ordinates of the first nontrivial zeta zeros, or a user file.
package reference

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for a file without any values.
var ErrEmpty = errors.New("reference: no values")

// Builtin holds the imaginary parts of the first 15 nontrivial zeros of ζ,
// to 20 decimal places.
var Builtin = []string{
	"14.134725141734693790",
	"21.022039638771554993",
	"25.010857580145688763",
	"30.424876125859513210",
	"32.935061587739189690",
	"37.586178158825671257",
	"40.918719012147495187",
	"43.327073280914999519",
	"48.005150881167159727",
	"49.773832477672302181",
	"52.970321477714460644",
	"56.446247697063394804",
	"59.347044002602353079",
	"60.831778524609809844",
	"65.112544048081606660",
}

// Default returns a copy of Builtin.
func Default() []string { return append([]string(nil), Builtin...) }

// Load reads reference values from path. The format follows the extension:
// .json (array), .yaml/.yml (list or {zeros: [...]}), .toml (zeros = [...]),
// anything else is text with one value per line and # comments.
// Values are kept as literals so they can be parsed at the run's precision.
func Load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vals []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		vals, err = parseJSON(b)
	case ".yaml", ".yml":
		vals, err = parseYAML(b)
	case ".toml":
		vals, err = parseTOML(b)
	default:
		vals, err = parseText(b)
	}
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", path, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("reference %s: %w", path, ErrEmpty)
	}
	return vals, nil
}

func parseText(b []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			out = append(out, f)
		}
	}
	return out, sc.Err()
}

func parseJSON(b []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	switch v := doc.(type) {
	case []any:
		return literals(v)
	case map[string]any:
		if zs, ok := v["zeros"].([]any); ok {
			return literals(zs)
		}
	}
	return nil, errors.New(`want an array or {"zeros": [...]}`)
}

func parseYAML(b []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		seq := mappingValue(root, "zeros")
		if seq == nil {
			return nil, errors.New(`yaml mapping needs a "zeros" list`)
		}
		root = seq
	}
	if root.Kind != yaml.SequenceNode {
		return nil, errors.New("yaml: want a list of numbers")
	}
	out := make([]string, 0, len(root.Content))
	for _, n := range root.Content {
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("yaml line %d: want a number", n.Line)
		}
		out = append(out, n.Value)
	}
	return out, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func parseTOML(b []byte) ([]string, error) {
	var doc struct {
		Zeros []any `toml:"zeros"`
	}
	md, err := toml.Decode(string(b), &doc)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("zeros") {
		return nil, errors.New(`toml needs a "zeros" array`)
	}
	return literals(doc.Zeros)
}

// literals keeps the decimal text of each number. Floats decoded from TOML
// lose digits beyond float64; quote values to keep full precision.
func literals(raw []any) ([]string, error) {
	out := make([]string, 0, len(raw))
	for i, v := range raw {
		switch x := v.(type) {
		case string:
			out = append(out, strings.TrimSpace(x))
		case json.Number:
			out = append(out, x.String())
		case float64:
			out = append(out, fmt.Sprint(x))
		case int64:
			out = append(out, fmt.Sprint(x))
		default:
			return nil, fmt.Errorf("value %d: unsupported type %T", i, v)
		}
	}
	return out, nil
}
