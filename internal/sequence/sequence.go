package sequence

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out settlement reference numbers. It is an explicit
// dependency of the settlement service so tests can pin the numbers and the
// store never generates them as a hidden side effect.
type Generator interface {
	Next() int64
}

// Snowflake generates time-ordered reference numbers, unique per node.
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

func (s *Snowflake) Next() int64 {
	return s.node.Generate().Int64()
}

// Fixed is a deterministic Generator for tests.
type Fixed struct {
	mu   sync.Mutex
	next int64
}

func NewFixed(start int64) *Fixed {
	return &Fixed{next: start}
}

func (f *Fixed) Next() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.next
	f.next++
	return n
}
