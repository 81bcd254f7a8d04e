package harness

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// checkExpect compares a response against an expect clause and returns
// one message per mismatch.
func checkExpect(exp *Expect, status int, body []byte) []string {
	var errs []string

	if status != exp.Status {
		errs = append(errs, fmt.Sprintf("expected status %d, got %d", exp.Status, status))
	}

	if exp.EmptyBody && len(body) > 0 {
		errs = append(errs, fmt.Sprintf("expected empty body, got %s", body))
	}

	if exp.Body != nil {
		want, err := normalize(exp.Body)
		if err != nil {
			return append(errs, fmt.Sprintf("invalid expect.body: %v", err))
		}
		got := decodeBody(body)
		if !matchSubset(want, got) {
			errs = append(errs, fmt.Sprintf("expected body to contain %s, got %s", mustJSON(want), body))
		}
	}

	return errs
}

// normalize converts YAML-decoded values into the shapes encoding/json
// produces, so numbers compare as float64 and maps as map[string]any.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeBody decodes a JSON body, falling back to the raw text.
func decodeBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

// matchSubset reports whether actual contains everything in expected.
// Object keys absent from expected are ignored; arrays must match in
// length and element-wise.
func matchSubset(expected, actual any) bool {
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return false
		}
		for k, v := range exp {
			av, ok := act[k]
			if !ok || !matchSubset(v, av) {
				return false
			}
		}
		return true
	case []any:
		act, ok := actual.([]any)
		if !ok || len(act) != len(exp) {
			return false
		}
		for i := range exp {
			if !matchSubset(exp[i], act[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(expected, actual)
	}
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
