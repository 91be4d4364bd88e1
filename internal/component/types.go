// Package component locates React component definitions in parsed
// JavaScript and TypeScript modules and resolves their declared base types.
//
// Two definition forms are recognized: class-like definitions (a class with
// an extends clause, including class expressions assigned to variables and
// classes produced by arrow-function factories) and factory-style
// definitions (createReactClass / React.createClass calls taking an object
// literal). Extraction is purely syntactic and never resolves symbols across
// files.
package component

// Form distinguishes how a component definition is written.
type Form string

const (
	// FormClass is a class with an extends clause.
	FormClass Form = "class"
	// FormFactory is a createReactClass-style call with an object literal.
	FormFactory Form = "factory"
)

// BaseKind classifies the resolved base type of a definition.
//
// Resolution is conservative: anything the resolver cannot trace through at
// most one local binding collapses to BaseUnknown, which downstream analysis
// treats as "never flag".
type BaseKind string

const (
	// BaseNone marks factory definitions, which have no base type.
	BaseNone BaseKind = "none"
	// BaseGeneric is the plain component base (React.Component).
	BaseGeneric BaseKind = "generic"
	// BaseRestricted is the shallow-compare base (React.PureComponent).
	BaseRestricted BaseKind = "restricted"
	// BaseUnknown is any base expression the resolver could not trace.
	BaseUnknown BaseKind = "unknown"
)
