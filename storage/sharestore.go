package storage

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"go.dedis.ch/secretrecover/types"
	"golang.org/x/xerrors"
)

// ShareStore holds shares keyed by their index x, remembering the order in
// which they were put.
type ShareStore struct {
	order []int64
	store map[int64]types.Share
}

func NewShareStore() *ShareStore {
	return &ShareStore{
		store: make(map[int64]types.Share),
	}
}

// Put adds a share. A second share with the same x is refused.
func (s *ShareStore) Put(share types.Share) error {
	if _, ok := s.store[share.X]; ok {
		return xerrors.Errorf("duplicate share index %d", share.X)
	}
	s.store[share.X] = share
	s.order = append(s.order, share.X)
	return nil
}

func (s *ShareStore) Get(x int64) (types.Share, bool) {
	share, ok := s.store[x]
	return share, ok
}

func (s *ShareStore) Len() int {
	return len(s.order)
}

// For calls action on every share in insertion order, stopping at the first error
func (s *ShareStore) For(action func(share types.Share) error) error {
	for _, x := range s.order {
		err := action(s.store[x])
		if err != nil {
			return err
		}
	}
	return nil
}

// Shares returns the shares in insertion order
func (s *ShareStore) Shares() []types.Share {
	shares := make([]types.Share, 0, len(s.order))
	for _, x := range s.order {
		shares = append(shares, s.store[x])
	}
	return shares
}

func (s *ShareStore) Copy() *ShareStore {
	cp := NewShareStore()
	for _, x := range s.order {
		cp.Put(s.store[x])
	}
	return cp
}

// Hash fingerprints the content of the store. The order of insertion doesn't
// matter.
func (s *ShareStore) Hash() []byte {
	return Fingerprint(s.Shares())
}

// Fingerprint hashes shares independently of their order. Repeated indices
// are hashed as they are, so a degenerate set still gets a fingerprint.
func Fingerprint(shares []types.Share) []byte {
	sorted := make([]types.Share, len(shares))
	copy(sorted, shares)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		return a.Value < b.Value
	})

	h := sha256.New()
	for _, share := range sorted {
		h.Write([]byte(fmt.Sprintf("%d|%d|%s;", share.X, share.Base, share.Value)))
	}

	return h.Sum(nil)
}
