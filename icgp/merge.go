package icgp

import (
	"github.com/cbarrick/gogp/gperr"
	"github.com/cbarrick/gogp/lang"
)

// Merge unions the node maps of a and b into a fresh genome. Collision-free
// by construction, since node ids are globally unique across the whole
// process (spec §4.5.4). The merged genome's outputs are freshly initialised
// against outTypes rather than inherited from either parent, since a's and
// b's OutRefs/OutTypes need not agree.
func Merge(a, b *Genome, outTypes []lang.Type) (*Genome, error) {
	if a.Lang != b.Lang {
		return nil, gperr.Wrap(gperr.ErrInvalidLanguage, "merge: genomes use different languages")
	}
	m := &Genome{
		Nodes:       make(map[uint64]Node, len(a.Nodes)+len(b.Nodes)),
		InputIDs:    append(append([]uint64(nil), a.InputIDs...), b.InputIDs...),
		ConstantIDs: append(append([]uint64(nil), a.ConstantIDs...), b.ConstantIDs...),
		OutTypes:    append([]lang.Type(nil), outTypes...),
		Lang:        a.Lang,
		Resolver:    a.Resolver,
		Options:     a.Options,
	}
	for id, n := range a.Nodes {
		m.Nodes[id] = n
	}
	for id, n := range b.Nodes {
		m.Nodes[id] = n
	}
	if err := m.InitOutRefs(); err != nil {
		return nil, err
	}
	return m, nil
}
