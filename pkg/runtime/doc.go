// Package runtime is the core of an ECMAScript engine: the tagged value
// universe, the object/property system, the prototype-chain property-access
// protocol, the Proxy interception layer, and the abstract type-conversion
// operations that the rest of a JS engine (lexer, parser, bytecode VM,
// RegExp engine, Intl/Date/JSON/Math libraries) builds on top of.
//
// Everything in this package is deeply coupled by design — every property
// access threads a receiver through the prototype chain, every conversion
// can re-enter through a user-defined @@toPrimitive or getter, and every
// Proxy trap must be checked against invariants on its target — so, like
// the teacher's internal/interp/runtime package, it is kept as one package
// rather than split along type boundaries that would force import cycles.
//
// The package never drives bytecode, never parses source, and never
// compiles regular expressions; those collaborators are consumed only
// through the narrow interfaces in pkg/host.
package runtime
