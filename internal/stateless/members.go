package stateless

// lifecycleNames holds the hook names of both class and factory forms,
// including the legacy createReactClass-era hooks. Any of them forces the
// instance form.
var lifecycleNames = map[string]bool{
	"componentWillMount":               true,
	"UNSAFE_componentWillMount":        true,
	"componentDidMount":                true,
	"componentWillReceiveProps":        true,
	"UNSAFE_componentWillReceiveProps": true,
	"shouldComponentUpdate":            true,
	"componentWillUpdate":              true,
	"UNSAFE_componentWillUpdate":       true,
	"getSnapshotBeforeUpdate":          true,
	"componentDidUpdate":               true,
	"componentWillUnmount":             true,
	"componentDidCatch":                true,
	"getDerivedStateFromProps":         true,
	"getDerivedStateFromError":         true,
	"getDefaultProps":                  true,
	"getInitialState":                  true,
	"getChildContext":                  true,
}

// metadataNames are the declarative members a pure component may keep.
var metadataNames = map[string]bool{
	"displayName":       true,
	"propTypes":         true,
	"contextTypes":      true,
	"childContextTypes": true,
	"defaultProps":      true,
}

// childContextName marks participation in the context propagation protocol,
// which exempts a definition from the flag entirely.
const childContextName = "childContextTypes"

// classifyMemberName buckets a member by name. Class-form metadata counts
// only when declared static; factory members are already the static
// equivalent. A static render is not the instance render and falls through
// to MemberOther.
func classifyMemberName(name string, static bool, factory bool) MemberKind {
	switch {
	case name == "render" && !static:
		return MemberRender
	case name == "constructor" && !factory && !static:
		return MemberConstructor
	case lifecycleNames[name]:
		return MemberLifecycle
	case metadataNames[name]:
		if factory || static {
			return MemberMetadata
		}
	}
	return MemberOther
}
