package engine

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"go.starlark.net/starlark"
)

// ComputeInputHash hashes a source id together with its inputs. Used to tell
// whether a preset file actually changed between reloads.
func ComputeInputHash(sourceID string, inputs map[string]interface{}) string {
	data := map[string]interface{}{
		"source": sourceID,
		"inputs": inputs,
	}
	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

// ExecuteStarlark executes a script with provided inputs as predeclared
// globals and returns the script's globals as native Go values.
func ExecuteStarlark(threadName string, script string, inputs map[string]interface{}, onPrint func(string)) (map[string]interface{}, error) {
	thread := &starlark.Thread{Name: threadName, Print: func(_ *starlark.Thread, msg string) {
		if onPrint != nil {
			onPrint(msg)
		}
	}}

	predeclared := starlark.StringDict{}
	for k, v := range inputs {
		val, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", k, err)
		}
		predeclared[k] = val
	}

	resultGlobals, err := starlark.ExecFile(thread, threadName, script, predeclared)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	for k, v := range resultGlobals {
		out[k] = FromStarlarkValue(v)
	}
	return out, nil
}

func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

// FromStarlarkValue converts scalars, lists, tuples and string-keyed dicts.
// Anything else becomes nil.
func FromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	case *starlark.List:
		out := make([]interface{}, 0, val.Len())
		for i := 0; i < val.Len(); i++ {
			out = append(out, FromStarlarkValue(val.Index(i)))
		}
		return out
	case starlark.Tuple:
		out := make([]interface{}, 0, len(val))
		for _, item := range val {
			out = append(out, FromStarlarkValue(item))
		}
		return out
	case *starlark.Dict:
		out := make(map[string]interface{}, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				continue
			}
			out[string(key)] = FromStarlarkValue(item[1])
		}
		return out
	}
	return nil
}
