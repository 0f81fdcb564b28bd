// Package core defines the shared types used across streamlog.
//
// Level orders severities from Off (strictest threshold) to Trace (most
// verbose). A threshold enables a record when the threshold is
// numerically greater than or equal to the record's level.
//
// Record is the immutable result of one log statement: level, call site
// (file, line, function) and the accumulated content. Records travel by
// value from the builder through the dispatch callback to the backend,
// so replacing the callback never affects a record already handed out.
//
// Entry is what an appender receives: the Record plus the time stamp,
// the logger name and the mapped diagnostic context as a list of Field
// pairs ordered by key.
//
// CoarseClock is a zapcore.Clock backed by a cached time value that a
// background goroutine refreshes every 500µs. Backends can opt into it
// when exact time stamps matter less than the cost of time.Now.
package core
