package pipeline

// Stage is one position in the fixed five-point fabrication pipeline.
// Values are strictly ordered; a derived stage never regresses for a given
// item as its ledger grows.
type Stage int

const (
	StagePending Stage = iota
	StageSmithing
	StagePuttying
	StageFinalAssembly
	StageFinished
)

var stageNames = map[Stage]string{
	StagePending:       "pending",
	StageSmithing:      "smithing",
	StagePuttying:      "puttying",
	StageFinalAssembly: "final_assembly",
	StageFinished:      "finished",
}

var stageLabels = map[Stage]string{
	StagePending:       "Pending",
	StageSmithing:      "Smithing",
	StagePuttying:      "Puttying/Painting",
	StageFinalAssembly: "Final assembly",
	StageFinished:      "Finished",
}

// String returns the machine-readable stage name.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Label returns the operator-facing stage name.
func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// Ordinal returns the 1-based position among the working stages
// (Smithing=1 .. Finished=4). Pending has no working ordinal and returns 0.
func (s Stage) Ordinal() int {
	if s < StageSmithing || s > StageFinished {
		return 0
	}
	return int(s)
}

// Next returns the successor stage, saturating at Finished.
func (s Stage) Next() Stage {
	if s >= StageFinished {
		return StageFinished
	}
	return s + 1
}

// ParseStage converts a machine-readable name back into a Stage.
func ParseStage(value string) (Stage, bool) {
	for stage, name := range stageNames {
		if name == value {
			return stage, true
		}
	}
	return StagePending, false
}
