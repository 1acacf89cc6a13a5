package entity

// SlotMode controls whether a yard lane is one free pool or a fixed grid.
type SlotMode string

const (
	SlotModeSingle SlotMode = "single"
	SlotModeTwo    SlotMode = "two"
	SlotModeThree  SlotMode = "three"
)

// SingleLaneID is the pseudo lane used by single-mode yards.
const SingleLaneID = "single"

// OverflowYardID is where freshly loaded chassis are parked by default.
const OverflowYardID = "kawaguchi"

type YardLane struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type PositionLabels struct {
	Front  string `json:"front"`
	Middle string `json:"middle"`
	Back   string `json:"back"`
}

// YardConfig is board configuration, not reconciled data. Mutated only through
// operator settings and persisted with the rest of the board state.
type YardConfig struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Lanes          []YardLane     `json:"lanes"`
	SlotMode       SlotMode       `json:"slotMode,omitempty"`
	PositionLabels PositionLabels `json:"positionLabels"`
}

// DeliveryYardGroups is the fixed yard taxonomy for delivery lanes; anything
// unmatched falls into the その他 bucket.
var DeliveryYardGroups = []string{"大井", "青海", "中防", "品川", "本牧", "その他"}

var defaultPositionLabels = PositionLabels{Front: "前", Middle: "中", Back: "奥"}

// DefaultYards returns the built-in yard layout used on a fresh board.
func DefaultYards() []YardConfig {
	return []YardConfig{
		{
			ID: "ohi", Name: "大井", SlotMode: SlotModeThree, PositionLabels: defaultPositionLabels,
			Lanes: []YardLane{
				{ID: "lane1", Label: "A43"}, {ID: "lane2", Label: "A45"},
				{ID: "lane3", Label: "A47"}, {ID: "lane4", Label: "A49"},
				{ID: "lane5", Label: "A51"}, {ID: "lane6", Label: "A53"},
				{ID: "lane7", Label: "A55"}, {ID: "lane8", Label: "A57"},
				{ID: "lane9", Label: "A59"}, {ID: "lane10", Label: "A61"},
				{ID: "lane11", Label: "A63"}, {ID: "lane12", Label: "A65"},
				{ID: "lane13", Label: "A139"}, {ID: "lane14", Label: "A141"},
			},
		},
		{
			ID: "shinagawa", Name: "品川", SlotMode: SlotModeThree, PositionLabels: defaultPositionLabels,
			Lanes: []YardLane{{ID: "lane1", Label: "19"}},
		},
		{
			ID: "nakabo", Name: "中防", SlotMode: SlotModeThree, PositionLabels: defaultPositionLabels,
			Lanes: []YardLane{
				{ID: "lane1", Label: "35"}, {ID: "lane2", Label: "39"}, {ID: "lane3", Label: "68"},
			},
		},
		{
			ID: "kawaguchi", Name: "川口車庫", SlotMode: SlotModeSingle,
			Lanes: []YardLane{{ID: "lane1", Label: "レーン1"}},
		},
		{
			ID: "custom", Name: "現場（カスタマイズ可）", SlotMode: SlotModeSingle,
			Lanes: []YardLane{{ID: "lane1", Label: "レーン1"}, {ID: "lane2", Label: "レーン2"}},
		},
	}
}

// NormalizeYards fills defaults for yard entries coming from a persisted blob
// of unknown vintage: missing slot mode, missing position labels, empty lanes.
// An empty list falls back to the built-in layout.
func NormalizeYards(list []YardConfig) []YardConfig {
	if len(list) == 0 {
		return DefaultYards()
	}
	out := make([]YardConfig, 0, len(list))
	for _, y := range list {
		if y.ID == "" {
			continue
		}
		if y.SlotMode != SlotModeSingle && y.SlotMode != SlotModeTwo && y.SlotMode != SlotModeThree {
			if y.ID == "kawaguchi" || y.ID == "custom" {
				y.SlotMode = SlotModeSingle
			} else {
				y.SlotMode = SlotModeThree
			}
		}
		if y.SlotMode != SlotModeSingle && y.PositionLabels == (PositionLabels{}) {
			y.PositionLabels = defaultPositionLabels
		}
		if len(y.Lanes) == 0 {
			y.Lanes = []YardLane{{ID: "lane1", Label: "レーン1"}}
		}
		out = append(out, y)
	}
	if len(out) == 0 {
		return DefaultYards()
	}
	return out
}
