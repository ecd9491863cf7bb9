package entity

// Preset values offered by the product settings form.
var (
	PresetDiameters      = []float64{105, 112}
	PresetSheetWidths    = []float64{99, 110}
	PresetPerfLengths    = []float64{120, 124}
	PresetTissueMachines = []string{"TM5", "PM3", "PM3-2PLY"}
)

// TissueMachine assigns a parent reel source to each unwind stand.
type TissueMachine struct {
	Unwind1 string `json:"unwind1,omitempty"`
	Unwind2 string `json:"unwind2,omitempty"`
}

// ProductSpec is the geometry of a log product. Diameter and PerfLength key
// into the conversion factor table.
type ProductSpec struct {
	Diameter      float64       `json:"diameter,omitempty"`
	SheetWidth    float64       `json:"sheetWidth,omitempty"`
	PerfLength    float64       `json:"perfLength,omitempty"`
	TissueMachine TissueMachine `json:"tissueMachine"`
}

// Product is one configured product within a folder.
type Product struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	IsActive bool        `json:"isActive,omitempty"`
	Settings ProductSpec `json:"settings"`
}

// ProductFolder groups products of one product line.
type ProductFolder struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Products        []Product    `json:"products"`
	DefaultSettings *ProductSpec `json:"defaultSettings,omitempty"`
}

// DefaultProductSpec is the base every new product is merged onto.
func DefaultProductSpec() ProductSpec {
	return ProductSpec{
		Diameter:   PresetDiameters[0],
		SheetWidth: PresetSheetWidths[0],
		PerfLength: PresetPerfLengths[0],
		TissueMachine: TissueMachine{
			Unwind1: PresetTissueMachines[0],
			Unwind2: PresetTissueMachines[0],
		},
	}
}

// ProductLineDefaults holds the known product lines by folder id.
var ProductLineDefaults = map[string]ProductSpec{
	"waitrose-essentials": {
		Diameter:      105,
		SheetWidth:    99,
		PerfLength:    120,
		TissueMachine: TissueMachine{Unwind1: "TM5", Unwind2: "TM5"},
	},
	"waitrose-premium": {
		Diameter:      112,
		SheetWidth:    110,
		PerfLength:    124,
		TissueMachine: TissueMachine{Unwind1: "PM3", Unwind2: "PM3"},
	},
	"andrex-complete": {
		Diameter:      112,
		SheetWidth:    110,
		PerfLength:    124,
		TissueMachine: TissueMachine{Unwind1: "PM3-2PLY", Unwind2: "PM3-2PLY"},
	},
}

// DefaultProductFolders seeds an empty store.
func DefaultProductFolders() []ProductFolder {
	seed := []struct{ ID, Name string }{
		{"waitrose-essentials", "Waitrose Essentials"},
		{"waitrose-premium", "Waitrose Premium"},
		{"andrex-complete", "Andrex Complete Clean"},
	}
	folders := make([]ProductFolder, 0, len(seed))
	for _, s := range seed {
		defaults := ProductLineDefaults[s.ID]
		folders = append(folders, ProductFolder{
			ID:              s.ID,
			Name:            s.Name,
			Products:        []Product{},
			DefaultSettings: &defaults,
		})
	}
	return folders
}
