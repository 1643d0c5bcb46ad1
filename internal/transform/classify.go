package transform

import "strings"

// Family prefixes, checked in this order.
const (
	StructuresKey = "boundaryAndOpeningStructures"
	ProposalsKey  = "modernisationProposalDetails"
	SystemsKey    = "modernisationProposalsOfBuildingServicesSystems"
)

// Streams holds the entries of one record partitioned by family prefix.
// Each stream keeps the input order.
type Streams struct {
	Structures []Entry
	Proposals  []Entry
	Systems    []Entry
	Other      []Entry
}

// Classify routes every entry to exactly one stream.
func Classify(entries []Entry) Streams {
	var s Streams
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e.Key, StructuresKey+Separator):
			s.Structures = append(s.Structures, e)
		case strings.HasPrefix(e.Key, ProposalsKey+Separator):
			s.Proposals = append(s.Proposals, e)
		case strings.HasPrefix(e.Key, SystemsKey+Separator):
			s.Systems = append(s.Systems, e)
		default:
			s.Other = append(s.Other, e)
		}
	}
	return s
}

// Len returns the total number of entries across all streams.
func (s Streams) Len() int {
	return len(s.Structures) + len(s.Proposals) + len(s.Systems) + len(s.Other)
}

// windows splits entries into consecutive groups of exactly size values,
// normalized positionally. A trailing partial group is dropped.
func windows(entries []Entry, size int) [][]any {
	out := make([][]any, 0, len(entries)/size)
	for i := 0; i+size <= len(entries); i += size {
		w := make([]any, size)
		for j := range w {
			w[j] = Normalize(entries[i+j].Value)
		}
		out = append(out, w)
	}
	return out
}
