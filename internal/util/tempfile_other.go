//go:build !unix

package util

import "os"

// checkWritable probes by creating and removing a scratch file.
func checkWritable(path string) error {
	f, err := os.CreateTemp(path, ".write_probe_*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
