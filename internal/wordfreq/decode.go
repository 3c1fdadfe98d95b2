package wordfreq

import (
	"fmt"
	"io"

	"github.com/ugorji/go/codec"
)

// decodeBuckets reads a wordfreq cB list: a msgpack array whose first item
// may be a header map, followed by one array of words per frequency bucket,
// most frequent bucket first. The flattened words keep that order.
func decodeBuckets(r io.Reader) ([]string, error) {
	var h codec.MsgpackHandle
	h.RawToString = true

	var root []any
	if err := codec.NewDecoder(r, &h).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack: %w", err)
	}
	if len(root) > 0 {
		switch root[0].(type) {
		case map[any]any, map[string]any:
			root = root[1:]
		}
	}

	var words []string
	for i, item := range root {
		bucket, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("bucket %d: unexpected %T", i, item)
		}
		for _, w := range bucket {
			switch v := w.(type) {
			case string:
				words = append(words, v)
			case []byte:
				words = append(words, string(v))
			default:
				return nil, fmt.Errorf("bucket %d: unexpected word %T", i, w)
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("frequency list is empty")
	}
	return words, nil
}
