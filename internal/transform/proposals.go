package transform

const proposalStride = 10

// Proposal levels attached to every modernisation proposal.
const (
	LevelGood      = "good"
	LevelExcellent = "excellent"
)

// Proposal is one modernisation proposal for a building structure.
type Proposal struct {
	StructureType              any               `json:"structureType"`
	StructureNote              any               `json:"structureNote"`
	StructureSurfaceArea       any               `json:"structureSurfaceArea"`
	AirTightness               any               `json:"airTightness"`
	Note                       any               `json:"note"`
	CurrentStateValue          any               `json:"currentStateValue"`
	ProposalEnergeticQualities []ProposalQuality `json:"proposalEnergeticQualities"`
}

// ProposalQuality is the U value and dimension needed to reach a level.
type ProposalQuality struct {
	Quality   string `json:"quality"`
	U         any    `json:"u"`
	Dimension any    `json:"dimension"`
}

func (p Proposal) MarshalJSON() ([]byte, error) {
	qualities := p.ProposalEnergeticQualities
	if qualities == nil {
		qualities = []ProposalQuality{}
	}
	o := NewObject()
	o.Set("structureType", p.StructureType)
	o.Set("structureNote", p.StructureNote)
	o.Set("structureSurfaceArea", p.StructureSurfaceArea)
	o.Set("airTightness", p.AirTightness)
	o.Set("note", p.Note)
	o.Set("currentStateValue", p.CurrentStateValue)
	o.Set("proposalEnergeticQualities", qualities)
	return o.MarshalJSON()
}

func (q ProposalQuality) MarshalJSON() ([]byte, error) {
	o := NewObject()
	o.Set("quality", q.Quality)
	o.Set("u", q.U)
	o.Set("dimension", q.Dimension)
	return o.MarshalJSON()
}

// BuildProposals emits one Proposal per ten consecutive entries of the
// proposal stream, in order. Groups without a structure type are skipped.
func BuildProposals(entries []Entry) []*Proposal {
	var out []*Proposal
	for _, w := range windows(entries, proposalStride) {
		if isBlank(w[0]) {
			continue
		}
		out = append(out, &Proposal{
			StructureType:        w[0],
			StructureNote:        w[1],
			StructureSurfaceArea: w[2],
			AirTightness:         w[3],
			Note:                 w[4],
			CurrentStateValue:    w[5],
			ProposalEnergeticQualities: []ProposalQuality{
				{Quality: LevelGood, U: w[6], Dimension: w[7]},
				{Quality: LevelExcellent, U: w[8], Dimension: w[9]},
			},
		})
	}
	return out
}
