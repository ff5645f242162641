package cookie

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const internShards = 256

type internShard struct {
	table map[string]string
	mu    sync.RWMutex
}

// Interner deduplicates repeated strings such as domains and paths, so large
// imports keep one copy of each.
type Interner struct {
	shards [internShards]*internShard
	once   [internShards]sync.Once
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{}
}

// Intern returns the canonical copy of s.
// uses 256 shards with xxhash distribution to minimize lock contention
func (in *Interner) Intern(s string) string {
	if s == "" {
		return ""
	}

	shard := in.shard(xxhash.Sum64String(s) % internShards)

	shard.mu.RLock()
	if interned, exists := shard.table[s]; exists {
		shard.mu.RUnlock()
		return interned
	}
	shard.mu.RUnlock()

	// double-checked locking: another writer may have stored it in between
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if interned, exists := shard.table[s]; exists {
		return interned
	}

	shard.table[s] = s
	return s
}

// shard returns the shard at idx, creating it on first use. Every access goes
// through once so readers never see a half-published shard.
func (in *Interner) shard(idx uint64) *internShard {
	in.once[idx].Do(func() {
		in.shards[idx] = &internShard{table: make(map[string]string)}
	})
	return in.shards[idx]
}

// Size returns the number of distinct strings held. It is safe to call while
// other goroutines intern.
func (in *Interner) Size() int {
	total := 0
	for i := range in.shards {
		shard := in.shard(uint64(i))
		shard.mu.RLock()
		total += len(shard.table)
		shard.mu.RUnlock()
	}
	return total
}
