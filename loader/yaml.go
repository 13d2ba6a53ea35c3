package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// decodeYAML decodes the first document of a YAML stream into a JSON-like
// tree. Numbers become json.Number so the tree matches what the JSON decoder
// produces. Duplicate keys keep the last value and are reported as warnings.
func decodeYAML(data []byte) (any, []string, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("loader: empty YAML document")
		}
		return nil, nil, err
	}
	c := &yamlConverter{}
	v := c.convert(&root, "")
	var next yaml.Node
	if err := dec.Decode(&next); err == nil {
		c.warnings = append(c.warnings, "/: only the first YAML document is used")
	}
	return v, c.warnings, nil
}

type yamlConverter struct {
	warnings []string
}

func (c *yamlConverter) convert(n *yaml.Node, at string) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return c.convert(n.Content[0], at)
	case yaml.AliasNode:
		return c.convert(n.Alias, at)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			child := at + "/" + escape(key)
			if pos, dup := first[key]; dup {
				c.warnings = append(c.warnings, fmt.Sprintf("%s: duplicate YAML key %q at %d:%d (first at %d:%d); last value wins",
					pointer(child), key, k.Line, k.Column, pos[0], pos[1]))
			}
			first[key] = [2]int{k.Line, k.Column}
			m[key] = c.convert(v, child)
		}
		return m
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, e := range n.Content {
			arr = append(arr, c.convert(e, at+"/"+strconv.Itoa(i)))
		}
		return arr
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil
}

func scalar(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return json.Number(strconv.FormatInt(i, 10))
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return json.Number(strconv.FormatUint(u, 10))
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	return n.Value
}
