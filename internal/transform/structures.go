package transform

const structureStride = 4

// Structure collects the energetic qualities recorded for one type of
// boundary or opening structure.
type Structure struct {
	TypeOfStructure    string             `json:"typeOfStructure"`
	EnergeticQualities []EnergeticQuality `json:"energeticQualities"`
}

// EnergeticQuality is one (quality, U, dimension) row of a Structure.
type EnergeticQuality struct {
	Quality   any `json:"quality"`
	U         any `json:"U"`
	Dimension any `json:"dimension"`
}

func (q EnergeticQuality) MarshalJSON() ([]byte, error) {
	o := NewObject()
	o.Set("quality", q.Quality)
	o.Set("U", q.U)
	o.Set("dimension", q.Dimension)
	return o.MarshalJSON()
}

// BuildStructures rebuilds structure records from the boundary stream.
// Every four consecutive entries form one (type, quality, U, dimension)
// row; rows without a quality are skipped and rows sharing a type are
// merged into the first record seen for that type.
func BuildStructures(entries []Entry) []*Structure {
	var out []*Structure
	byType := make(map[string]*Structure)
	for _, w := range windows(entries, structureStride) {
		typ, quality, u, dim := w[0], w[1], w[2], w[3]
		if isBlank(quality) {
			continue
		}
		key := Text(typ)
		s, ok := byType[key]
		if !ok {
			s = &Structure{TypeOfStructure: key}
			byType[key] = s
			out = append(out, s)
		}
		s.EnergeticQualities = append(s.EnergeticQualities, EnergeticQuality{
			Quality:   quality,
			U:         u,
			Dimension: dim,
		})
	}
	return out
}
