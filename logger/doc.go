// Package logger is the public API of streamlog. Most programs only
// import this package.
//
// A log statement names a level and a function that builds the content
// token by token:
//
//	logger.Info(func(b *logger.Builder) {
//	    b.Str("listening on port").Int(8080)
//	})
//
// Tokens are separated by single spaces unless NoWhitespace was
// appended. The builder function and the optional condition of the If
// variants only run when the level is enabled, so a disabled statement
// costs one level check:
//
//	logger.DebugIf(cacheMissed, func(b *logger.Builder) {
//	    b.Str("miss for").Val(logger.List(keys))
//	})
//
// The finished record, carrying level, file, line, function and
// content, goes to the process-wide callback. The default callback
// forwards it to the backend logger returned by Instance, which writes
// it to its appenders. SetCallback installs a different one; records
// already dispatched are not affected.
//
// Fatal statements are ordinary records at FatalLevel. They never stop
// the process.
package logger
