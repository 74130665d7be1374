package types

import (
	"strconv"
	"strings"
)

// Descriptor returns the canonical descriptor string of t.
//
//	primitives   :Int  :Float  :Boolean  :String
//	nominal      <mods>:<name>          e.g. &?:List
//	generic      @ <n> <base> <args...>
//	function     $ <n> <params...> <ret>
//	never/unit   Never  ?:Never  Unit  ?:Unit
//	infer        <Infer>
func (t Type) Descriptor() string {
	var sb strings.Builder
	t.writeDescriptor(&sb)
	return sb.String()
}

func (t Type) writeDescriptor(sb *strings.Builder) {
	switch t.kind {
	case KindInfer:
		sb.WriteString("<Infer>")
	case KindNever, KindUnit:
		if t.IsNullable() {
			sb.WriteString("?:")
		}
		sb.WriteString(t.kind.String())
	case KindNominal:
		sb.WriteString(t.mods.descriptor())
		sb.WriteByte(':')
		sb.WriteString(t.name)
	case KindGeneric:
		sb.WriteString("@ ")
		sb.WriteString(strconv.Itoa(len(t.elems)))
		sb.WriteByte(' ')
		t.Base().writeDescriptor(sb)
		for _, a := range t.elems {
			sb.WriteByte(' ')
			a.writeDescriptor(sb)
		}
	case KindFunction:
		sb.WriteString("$ ")
		sb.WriteString(strconv.Itoa(len(t.elems)))
		for _, p := range t.elems {
			sb.WriteByte(' ')
			p.writeDescriptor(sb)
		}
		sb.WriteByte(' ')
		t.Return().writeDescriptor(sb)
	default:
		sb.WriteByte(':')
		sb.WriteString(t.kind.String())
	}
}

// DescriptorList joins descriptors with a space; used as a cache key
// for argument tuples.
func DescriptorList(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Descriptor()
	}
	return strings.Join(parts, " ")
}
