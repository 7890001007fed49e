package memory

import "fmt"

// Stats is a point-in-time snapshot of pool usage.
type Stats struct {
	TotalSize     uint64  `json:"totalSize" yaml:"totalSize"`
	UsedSize      uint64  `json:"usedSize" yaml:"usedSize"`
	FreeSize      uint64  `json:"freeSize" yaml:"freeSize"`
	Blocks        int     `json:"blocks" yaml:"blocks"`
	LargestFree   uint64  `json:"largestFree" yaml:"largestFree"`
	Fragmentation float64 `json:"fragmentation" yaml:"fragmentation"`
}

// Stats captures the current usage counters under the pool lock.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		TotalSize:     p.size,
		UsedSize:      p.used,
		FreeSize:      p.size - p.used,
		Blocks:        len(p.blocks),
		LargestFree:   p.largestFree(),
		Fragmentation: p.fragmentation(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Memory Pool Stats:\nTotal Size: %d bytes\nUsed Size: %d bytes\nFree Size: %d bytes\nFragmentation: %.2f%%\nNumber of blocks: %d",
		s.TotalSize, s.UsedSize, s.FreeSize, s.Fragmentation*100, s.Blocks)
}
