package device

import "strconv"

// Namer hands out sequential names per kind for one build session. The zero
// value is ready to use.
type Namer struct {
	counts map[Kind]int
}

func NewNamer() *Namer {
	return &Namer{counts: make(map[Kind]int)}
}

// Next returns the name of the next node of kind k, e.g. Load3.
func (n *Namer) Next(k Kind) string {
	if n.counts == nil {
		n.counts = make(map[Kind]int)
	}
	n.counts[k]++
	return k.String() + strconv.Itoa(n.counts[k])
}

// Count returns how many names of kind k were handed out.
func (n *Namer) Count(k Kind) int {
	return n.counts[k]
}
