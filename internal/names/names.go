// Package names maps Yul identifiers and object names onto Rust identifiers.
package names

import (
	"regexp"
	"strings"
)

// Markers the solc frontend uses to keep generated names apart from user
// names, and the characters they become in Rust.
const (
	UserPrefix     = "usr$"
	Disambiguation = "$"

	UserPrefixRune     = "ᵤ"
	DisambiguationRune = "ₓ"

	// EscapeSuffix is appended to names that collide with a reserved word.
	// Yul identifiers are ASCII, so no Yul name can end with it.
	EscapeSuffix = "ₖ"
)

// runtimeNames are builtins whose name is a Rust keyword. The opcode runtime
// spells them with a trailing underscore.
var runtimeNames = map[string]string{
	"mod":    "mod_",
	"return": "return_",
}

// reserved holds every name that cannot be emitted verbatim: Rust keywords,
// the runtime spellings of the keyword builtins (mod_, return_), end, the
// implicit execution-context parameter and the per-object entry function.
var reserved = map[string]bool{
	"_": true, "end": true, "context": true, "body": true,
	"mod_": true, "return_": true,

	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true,
	"struct": true, "super": true, "trait": true, "true": true, "type": true,
	"unsafe": true, "use": true, "where": true, "while": true,

	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"gen": true, "macro": true, "override": true, "priv": true, "try": true,
	"typeof": true, "unsized": true, "virtual": true, "yield": true,
}

var marker = strings.NewReplacer(UserPrefix, UserPrefixRune, Disambiguation, DisambiguationRune)

// IsReserved reports whether name must be escaped.
func IsReserved(name string) bool {
	return reserved[name]
}

// Encode returns the Rust identifier for a Yul name. It is a pure function
// of its input.
func Encode(name string) string {
	if r, ok := runtimeNames[name]; ok {
		return r
	}
	if reserved[name] {
		return name + EscapeSuffix
	}
	return marker.Replace(name)
}

// Tuple renders a list of names as a Rust value or pattern: "()" when empty,
// the bare name for one element and a parenthesized tuple otherwise.
func Tuple(names []string) string {
	switch len(names) {
	case 0:
		return "()"
	case 1:
		return Encode(names[0])
	}
	encoded := make([]string, len(names))
	for i, n := range names {
		encoded[i] = Encode(n)
	}
	return "(" + strings.Join(encoded, ", ") + ")"
}

var (
	numericSuffix  = regexp.MustCompile(`_[0-9]+$`)
	deployedSuffix = regexp.MustCompile(`_[0-9]+_deployed$`)
)

// ModuleName normalizes an object name into a Rust module name: the trailing
// numeric suffix solc appends is dropped, "_<n>_deployed" collapses to
// "_deployed", and the result is lower-cased.
//
//	Counter_21          -> counter
//	Counter_21_deployed -> counter_deployed
func ModuleName(objectName string) string {
	name := numericSuffix.ReplaceAllString(objectName, "")
	name = strings.ToLower(name)
	name = deployedSuffix.ReplaceAllString(name, "_deployed")
	return Encode(name)
}
