package runtime

// buildPath walks parent links back from key to the state that has no parent
// (the root) and returns the states in root-to-key order.
func buildPath[S any](parent map[string]string, states map[string]S, key string) []S {
	keys := []string{key}
	for {
		prev, ok := parent[key]
		if !ok {
			break
		}
		keys = append(keys, prev)
		key = prev
	}

	path := make([]S, len(keys))
	for i, k := range keys {
		path[len(keys)-1-i] = states[k]
	}
	return path
}
