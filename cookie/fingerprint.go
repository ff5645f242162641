package cookie

import "github.com/cespare/xxhash/v2"

// Fingerprint hashes the (domain, name, path) tuple that identifies a cookie in a browser store.
// An empty path hashes like DefaultPath.
func (c Cookie) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(c.Domain)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(c.Name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(c.EffectivePath())
	return d.Sum64()
}

// Duplicates returns the positions of cookies whose tuple already appeared earlier in the sequence.
// Nothing is removed; callers decide what to do with repeats.
func Duplicates(cookies []Cookie) map[int]struct{} {
	seen := make(map[uint64]struct{}, len(cookies))
	dupes := make(map[int]struct{})
	for i, c := range cookies {
		fp := c.Fingerprint()
		if _, ok := seen[fp]; ok {
			dupes[i] = struct{}{}
			continue
		}
		seen[fp] = struct{}{}
	}
	return dupes
}
