package entity

// ThreadType thread standard family
type ThreadType string

const (
	ThreadUNC    ThreadType = "UNC"
	ThreadUNF    ThreadType = "UNF"
	ThreadMetric ThreadType = "Metric"
	ThreadBSP    ThreadType = "BSP"
	ThreadBSPT   ThreadType = "BSPT"
	ThreadBSPP   ThreadType = "BSPP"
	ThreadBSF    ThreadType = "BSF"
	ThreadBSW    ThreadType = "BSW"
	ThreadNPT    ThreadType = "NPT"
	ThreadNPTF   ThreadType = "NPTF"
	ThreadUNS    ThreadType = "UNS"
)

// Thread is one row of the thread reference catalogue. Imperial diameters
// carry a trailing inch mark ("0.250\""), metric ones are plain millimeters.
type Thread struct {
	Type          ThreadType `json:"type"`
	Size          string     `json:"size"`
	TPI           float64    `json:"tpi,omitempty"`
	Pitch         float64    `json:"pitch,omitempty"`
	MajorDiameter string     `json:"majorDiameter"`
	MinorDiameter string     `json:"minorDiameter"`
	TapDrill      string     `json:"tapDrill"`
	MetricSize    string     `json:"metricSize,omitempty"`
}
