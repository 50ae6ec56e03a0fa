// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

//go:build !unix

package ff

import "os"

// flockAdvisory is a no-op on platforms without flock; Session logs that
// advisory locking is unavailable and continues unlocked.
func flockAdvisory(f *os.File) error { return errUnsupportedPlatform }

func unflockAdvisory(f *os.File) {}

var errUnsupportedPlatform = &platformError{}

type platformError struct{}

func (*platformError) Error() string { return "ff: advisory locking unsupported on this platform" }
