// Package watch polls fixture files for changes.
//
// The watcher compares modification times on every tick instead of using
// OS notifications, which keeps it portable across editors that replace
// files on save. Directories are walked for .yaml and .yml files; hidden
// directories are skipped.
package watch
