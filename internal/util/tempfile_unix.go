//go:build unix

package util

import "golang.org/x/sys/unix"

func checkWritable(path string) error {
	return unix.Access(path, unix.W_OK)
}
