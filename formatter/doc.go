// Package formatter turns values into the tokens of a log record and
// renders finished records through a conversion pattern.
//
// A Builder collects tokens for one log statement. Each token is
// separated from the previous one by a single space until NoWhitespace
// switches separation off for the rest of the record. Builders are pooled
// with GetBuilder and PutBuilder; the Record returned by Finish owns its
// content, so a builder can be recycled as soon as it is finished.
//
// Value is the capability a type needs to be logged. The constructors
// cover the built-in categories:
//
//	Text, Of       strings, verbatim
//	Bool           "true" / "false"
//	Int            decimal
//	Float          shortest representation that reads back exactly
//	Ptr            "0x" followed by lowercase hex, as fmt's %p
//	List, Seq      "[a, b]"
//	Map, MapOf     "{{k : v}, ...}" with keys in ascending order
//	Items, Pairs   the same forms for iterators, in iteration order
//
// Any other type implements AppendLog and receives the live builder.
// There is no entry point taking an arbitrary interface{}: a type that
// is neither a scalar nor a Value does not compile.
//
// PatternLayout renders an Entry through a log4j-style conversion
// pattern. It writes into a caller-supplied byte slice or a pooled
// bytes.Buffer. Buffers larger than 64 KiB are not returned to the pool.
package formatter
