package content

// Resolve merges a remote document into its fallback.
//
// A Null remote returns the fallback as is. When both sides are nodes the
// result starts as a shallow copy of the fallback; every non-null remote
// field then either recurses (node into node) or replaces the fallback field
// outright. Sequences are replaced wholesale, never merged item by item, and
// a shape mismatch prefers the remote value. Remote-only fields are kept.
// Neither argument is modified.
func Resolve(remote, fallback Value) Value {
	if remote.IsNull() {
		return fallback
	}
	if remote.kind != KindNode || fallback.kind != KindNode {
		return remote
	}

	acc := make(map[string]Value, len(fallback.node)+len(remote.node))
	for k, v := range fallback.node {
		acc[k] = v
	}
	for k, rv := range remote.node {
		if rv.IsNull() {
			continue
		}
		// a missing fallback field is Null, so rv wins below
		acc[k] = Resolve(rv, fallback.node[k])
	}
	return Value{kind: KindNode, node: acc}
}
