// Package cmap provides a string-keyed map safe for concurrent use.
//
// Keys are spread over a power-of-two number of shards by their murmur3
// hash, each shard guarded by its own RWMutex, so lookups for different
// peers rarely contend.
//
//	m := cmap.New[*peerState]()
//	st, _ := m.GetOrSet("10.0.0.7", newPeerState)
//	m.DeleteIf(func(_ string, st *peerState) bool { return st.idle() })
package cmap
