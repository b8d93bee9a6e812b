// Package normalize flattens parsed entity graphs into per-table entity maps
// keyed by identity, with nested entities replaced by their ids.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmcdole/plexkit/internal/domain"
)

// Result mirrors the root of a normalized graph. ID is the root's identity
// when the root is an entity, and the flattened root otherwise.
type Result struct {
	Schema string `json:"schema"`
	ID     any    `json:"id"`
}

// Normalized holds the entity tables and the result skeleton of one call.
type Normalized struct {
	Entities map[string]map[string]any `json:"entities"`
	Result   Result                    `json:"result"`
}

// Entity returns one stored entity.
func (n *Normalized) Entity(table, id string) (map[string]any, bool) {
	e, ok := n.Entities[table][id]
	if !ok {
		return nil, false
	}
	obj, ok := e.(map[string]any)
	return obj, ok
}

// Normalize flattens a parsed entity or container. v is any value that
// encodes to a JSON object with a "kind" tag, typically a parser result.
// Kinds with no schema pass through unchanged into Result.
func Normalize(v any) (*Normalized, error) {
	tree, err := toTree(v)
	if err != nil {
		return nil, err
	}

	root, _ := tree.(map[string]any)
	kind, _ := root["kind"].(string)
	if kind == "" {
		return nil, fmt.Errorf("normalize %T: %w", v, domain.ErrMissingKind)
	}

	w := &walker{entities: make(map[string]map[string]any)}
	out := &Normalized{
		Entities: w.entities,
		Result:   Result{Schema: kind, ID: tree},
	}

	if s, ok := rootSchema.resolve(root); ok {
		out.Result.ID = s.visit(w, root)
	}
	return out, nil
}

// toTree encodes v and decodes it into a fresh tree of maps, slices and
// scalars. Integral numbers decode as int64 so ids keep their exact value.
func toTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}
	return numbers(tree), nil
}

func numbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = numbers(child)
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = numbers(child)
		}
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	default:
		return v
	}
}
