// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - Watcher: reloads a ConfigStore when its file changes (fsnotify)
package file
