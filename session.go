// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// Options configures a Session. The zero value takes the advisory lock
// and logs nothing, matching a library caller embedding the package with
// no ambient logging infrastructure of its own.
type Options struct {
	// DisableAdvisoryLock skips the best-effort flock taken around
	// OpenFile on platforms that support it (see lock_unix.go). Readers
	// never need the lock; set this when opening for inspection only.
	DisableAdvisoryLock bool

	// CompressionLevel is the Compress level Archive uses when it
	// recompresses the session's zone.
	CompressionLevel CompressionLevel

	// Logger receives structured session events. A nil Logger discards
	// them.
	Logger log.Logger
}

// Session binds a FastFile archive open on disk to its parsed zone state.
// It is the unit of work for the CLI and for library callers who want
// Detect + Decompress + ParseZone + Mutate wired together with advisory
// locking and logging (spec.md §6.4).
type Session struct {
	opts   Options
	logger *log.Helper

	path   string
	file   *os.File
	region mmap.MMap
	locked bool

	Info VariantInfo
	Zone []byte
	Idx  *ZoneIndex

	// hashTable is the verbatim streaming hash table a signed Xbox 360
	// archive carries; Archive reuses it unchanged since this package
	// never regenerates signatures (spec.md Non-goals).
	hashTable []byte
}

// Open maps path into memory, detects its variant, decompresses the zone
// and parses its index. The returned Session owns the mmap and advisory
// lock until Close is called.
func Open(path string, opts Options) (*Session, error) {
	logger := log.NewHelper(opts.Logger)
	if opts.Logger == nil {
		logger = log.NewHelper(log.NewStdLogger(io.Discard))
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("ff: open %s: %w", path, err)
		}
	}

	locked := false
	if !opts.DisableAdvisoryLock {
		if err := flockAdvisory(f); err != nil {
			logger.Warnw("msg", "advisory lock unavailable, continuing without it", "path", path, "err", err)
		} else {
			locked = true
		}
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ff: mmap %s: %w", path, err)
	}

	zone, info, hashTable, err := Decompress(region)
	if err != nil {
		region.Unmap()
		f.Close()
		return nil, fmt.Errorf("ff: decompress %s: %w", path, err)
	}

	idx, err := ParseZone(zone, info)
	if err != nil {
		region.Unmap()
		f.Close()
		return nil, fmt.Errorf("ff: parse zone %s: %w", path, err)
	}

	logger.Infow("msg", "opened archive", "path", path, "game", info.Game.String(), "platform", info.Platform.String())

	return &Session{
		opts:   opts,
		logger: logger,
		path:   path,
		file:   f,
		region: region,
		locked: locked,
		Info:      info,
		Zone:      zone,
		Idx:       idx,
		hashTable: hashTable,
	}, nil
}

// Close releases the session's mmap, advisory lock and file handle.
func (s *Session) Close() error {
	var firstErr error
	if s.region != nil {
		if err := s.region.Unmap(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.locked {
		unflockAdvisory(s.file)
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Archive recompresses s.Zone back into a full FastFile archive, ready to
// write to disk in place of the file Open read it from.
func (s *Session) Archive() ([]byte, error) {
	return Compress(s.Zone, s.Info, CompressOptions{Level: s.opts.CompressionLevel, HashTable: s.hashTable})
}
