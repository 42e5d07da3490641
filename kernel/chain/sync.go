package chain

import "sync/atomic"

// SyncState reports whether the node is still catching up with the network
type SyncState struct {
	syncing atomic.Bool
}

func NewSyncState(syncing bool) *SyncState {
	s := &SyncState{}
	s.syncing.Store(syncing)
	return s
}

func (s *SyncState) IsSyncing() bool {
	return s.syncing.Load()
}

func (s *SyncState) SetSyncing(syncing bool) {
	s.syncing.Store(syncing)
}
