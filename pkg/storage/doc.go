// Package storage writes downloaded media to disk.
//
// Files are written through a temporary file and renamed into place, so a
// failed transfer never leaves a truncated destination behind. Existing
// files are kept unless the manager was created with overwrite enabled.
//
//	manager := storage.NewManager(false)
//	if manager.ShouldWrite(dest) {
//	    n, err := manager.Save(body, dest)
//	}
package storage
