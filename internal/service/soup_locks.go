// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

// SoupLocks hands out one mutex per soup. The sync manager and the object
// stores share an instance, so a local write never interleaves with a sync
// of the same soup.
type SoupLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSoupLocks() *SoupLocks {
	return &SoupLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until the soup is free and returns its unlock function.
func (l *SoupLocks) Lock(soup string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[soup]
	if !ok {
		m = &sync.Mutex{}
		l.locks[soup] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
