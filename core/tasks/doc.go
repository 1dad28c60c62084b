// Package tasks runs keyed units of work on a bounded pool and collects
// their results and failures by key.
package tasks
