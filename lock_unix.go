// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

//go:build unix

package ff

import (
	"os"

	"golang.org/x/sys/unix"
)

// flockAdvisory takes a non-blocking exclusive advisory lock on f. It is
// best-effort: callers log and continue on failure rather than treat it as
// fatal, since NFS and some container filesystems don't support flock.
func flockAdvisory(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

func unflockAdvisory(f *os.File) {
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
