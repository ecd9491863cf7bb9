package service

import "github.com/bitfantasy/linedash/internal/line/entity"

// threadCatalogue is the shop floor thread reference.
var threadCatalogue = []entity.Thread{
	// UNC (Unified National Coarse)
	{Type: entity.ThreadUNC, Size: "#4-40", TPI: 40, MajorDiameter: "0.112\"", MinorDiameter: "0.0813\"", TapDrill: "#43 (0.089\")", MetricSize: "2.84mm"},
	{Type: entity.ThreadUNC, Size: "#6-32", TPI: 32, MajorDiameter: "0.138\"", MinorDiameter: "0.0997\"", TapDrill: "#36 (0.1065\")", MetricSize: "3.51mm"},
	{Type: entity.ThreadUNC, Size: "#8-32", TPI: 32, MajorDiameter: "0.164\"", MinorDiameter: "0.1257\"", TapDrill: "#29 (0.136\")", MetricSize: "4.17mm"},
	{Type: entity.ThreadUNC, Size: "#10-24", TPI: 24, MajorDiameter: "0.190\"", MinorDiameter: "0.1389\"", TapDrill: "#25 (0.1495\")", MetricSize: "4.83mm"},
	{Type: entity.ThreadUNC, Size: "1/4-20", TPI: 20, MajorDiameter: "0.250\"", MinorDiameter: "0.1887\"", TapDrill: "#7 (0.201\")", MetricSize: "6.35mm"},
	{Type: entity.ThreadUNC, Size: "5/16-18", TPI: 18, MajorDiameter: "0.3125\"", MinorDiameter: "0.2443\"", TapDrill: "F (0.257\")", MetricSize: "7.94mm"},
	{Type: entity.ThreadUNC, Size: "3/8-16", TPI: 16, MajorDiameter: "0.375\"", MinorDiameter: "0.2983\"", TapDrill: "5/16\" (0.3125\")", MetricSize: "9.53mm"},
	{Type: entity.ThreadUNC, Size: "1/2-13", TPI: 13, MajorDiameter: "0.500\"", MinorDiameter: "0.4001\"", TapDrill: "27/64\" (0.4219\")", MetricSize: "12.70mm"},

	// UNF (Unified National Fine)
	{Type: entity.ThreadUNF, Size: "#4-48", TPI: 48, MajorDiameter: "0.112\"", MinorDiameter: "0.0864\"", TapDrill: "#42 (0.0935\")", MetricSize: "2.84mm"},
	{Type: entity.ThreadUNF, Size: "#6-40", TPI: 40, MajorDiameter: "0.138\"", MinorDiameter: "0.1073\"", TapDrill: "#33 (0.113\")", MetricSize: "3.51mm"},
	{Type: entity.ThreadUNF, Size: "#8-36", TPI: 36, MajorDiameter: "0.164\"", MinorDiameter: "0.1299\"", TapDrill: "#29 (0.136\")", MetricSize: "4.17mm"},
	{Type: entity.ThreadUNF, Size: "#10-32", TPI: 32, MajorDiameter: "0.190\"", MinorDiameter: "0.1517\"", TapDrill: "#21 (0.159\")", MetricSize: "4.83mm"},
	{Type: entity.ThreadUNF, Size: "1/4-28", TPI: 28, MajorDiameter: "0.250\"", MinorDiameter: "0.2062\"", TapDrill: "#3 (0.213\")", MetricSize: "6.35mm"},
	{Type: entity.ThreadUNF, Size: "5/16-24", TPI: 24, MajorDiameter: "0.3125\"", MinorDiameter: "0.2614\"", TapDrill: "I (0.272\")", MetricSize: "7.94mm"},
	{Type: entity.ThreadUNF, Size: "3/8-24", TPI: 24, MajorDiameter: "0.375\"", MinorDiameter: "0.3239\"", TapDrill: "Q (0.332\")", MetricSize: "9.53mm"},
	{Type: entity.ThreadUNF, Size: "1/2-20", TPI: 20, MajorDiameter: "0.500\"", MinorDiameter: "0.4387\"", TapDrill: "29/64\" (0.4531\")", MetricSize: "12.70mm"},

	// Metric
	{Type: entity.ThreadMetric, Size: "M3", Pitch: 0.5, MajorDiameter: "3.00mm", MinorDiameter: "2.39mm", TapDrill: "2.5mm"},
	{Type: entity.ThreadMetric, Size: "M4", Pitch: 0.7, MajorDiameter: "4.00mm", MinorDiameter: "3.24mm", TapDrill: "3.3mm"},
	{Type: entity.ThreadMetric, Size: "M5", Pitch: 0.8, MajorDiameter: "5.00mm", MinorDiameter: "4.13mm", TapDrill: "4.2mm"},
	{Type: entity.ThreadMetric, Size: "M6", Pitch: 1.0, MajorDiameter: "6.00mm", MinorDiameter: "4.92mm", TapDrill: "5.0mm"},
	{Type: entity.ThreadMetric, Size: "M8", Pitch: 1.25, MajorDiameter: "8.00mm", MinorDiameter: "6.65mm", TapDrill: "6.8mm"},
	{Type: entity.ThreadMetric, Size: "M10", Pitch: 1.5, MajorDiameter: "10.00mm", MinorDiameter: "8.38mm", TapDrill: "8.5mm"},
	{Type: entity.ThreadMetric, Size: "M12", Pitch: 1.75, MajorDiameter: "12.00mm", MinorDiameter: "10.11mm", TapDrill: "10.2mm"},
	{Type: entity.ThreadMetric, Size: "M16", Pitch: 2.0, MajorDiameter: "16.00mm", MinorDiameter: "13.84mm", TapDrill: "14.0mm"},

	// BSPP (British Standard Pipe Parallel)
	{Type: entity.ThreadBSPP, Size: "G1/8\" BSPP", TPI: 28, MajorDiameter: "9.728mm", MinorDiameter: "8.566mm", TapDrill: "8.8mm"},
	{Type: entity.ThreadBSPP, Size: "G1/4\" BSPP", TPI: 19, MajorDiameter: "13.157mm", MinorDiameter: "11.445mm", TapDrill: "11.8mm"},
	{Type: entity.ThreadBSPP, Size: "G3/8\" BSPP", TPI: 19, MajorDiameter: "16.662mm", MinorDiameter: "14.950mm", TapDrill: "15.2mm"},
	{Type: entity.ThreadBSPP, Size: "G1/2\" BSPP", TPI: 14, MajorDiameter: "20.955mm", MinorDiameter: "18.631mm", TapDrill: "19.0mm"},
	{Type: entity.ThreadBSPP, Size: "G3/4\" BSPP", TPI: 14, MajorDiameter: "26.441mm", MinorDiameter: "24.117mm", TapDrill: "24.5mm"},
	{Type: entity.ThreadBSPP, Size: "G1\" BSPP", TPI: 11, MajorDiameter: "33.249mm", MinorDiameter: "30.291mm", TapDrill: "30.5mm"},
	{Type: entity.ThreadBSPP, Size: "G1-1/4\" BSPP", TPI: 11, MajorDiameter: "41.910mm", MinorDiameter: "38.952mm", TapDrill: "39.0mm"},
	{Type: entity.ThreadBSPP, Size: "G1-1/2\" BSPP", TPI: 11, MajorDiameter: "47.803mm", MinorDiameter: "44.845mm", TapDrill: "45.0mm"},
	{Type: entity.ThreadBSPP, Size: "G2\" BSPP", TPI: 11, MajorDiameter: "59.614mm", MinorDiameter: "56.656mm", TapDrill: "57.0mm"},
	{Type: entity.ThreadBSPP, Size: "G2-1/2\" BSPP", TPI: 11, MajorDiameter: "75.184mm", MinorDiameter: "72.226mm", TapDrill: "72.5mm"},
	{Type: entity.ThreadBSPP, Size: "G3\" BSPP", TPI: 11, MajorDiameter: "87.884mm", MinorDiameter: "84.926mm", TapDrill: "85.0mm"},
	{Type: entity.ThreadBSPP, Size: "G4\" BSPP", TPI: 11, MajorDiameter: "113.030mm", MinorDiameter: "110.072mm", TapDrill: "110.0mm"},

	// BSPT (British Standard Pipe Taper)
	{Type: entity.ThreadBSPT, Size: "R1/8\" BSPT", TPI: 28, MajorDiameter: "9.728mm", MinorDiameter: "8.566mm", TapDrill: "8.6mm"},
	{Type: entity.ThreadBSPT, Size: "R1/4\" BSPT", TPI: 19, MajorDiameter: "13.157mm", MinorDiameter: "11.445mm", TapDrill: "11.6mm"},
	{Type: entity.ThreadBSPT, Size: "R3/8\" BSPT", TPI: 19, MajorDiameter: "16.662mm", MinorDiameter: "14.950mm", TapDrill: "15.0mm"},
	{Type: entity.ThreadBSPT, Size: "R1/2\" BSPT", TPI: 14, MajorDiameter: "20.955mm", MinorDiameter: "18.631mm", TapDrill: "18.8mm"},
	{Type: entity.ThreadBSPT, Size: "R3/4\" BSPT", TPI: 14, MajorDiameter: "26.441mm", MinorDiameter: "24.117mm", TapDrill: "24.3mm"},
	{Type: entity.ThreadBSPT, Size: "R1\" BSPT", TPI: 11, MajorDiameter: "33.249mm", MinorDiameter: "30.291mm", TapDrill: "30.3mm"},
	{Type: entity.ThreadBSPT, Size: "R1-1/4\" BSPT", TPI: 11, MajorDiameter: "41.910mm", MinorDiameter: "38.952mm", TapDrill: "39.0mm"},
	{Type: entity.ThreadBSPT, Size: "R1-1/2\" BSPT", TPI: 11, MajorDiameter: "47.803mm", MinorDiameter: "44.845mm", TapDrill: "45.0mm"},
	{Type: entity.ThreadBSPT, Size: "R2\" BSPT", TPI: 11, MajorDiameter: "59.614mm", MinorDiameter: "56.656mm", TapDrill: "57.0mm"},
	{Type: entity.ThreadBSPT, Size: "R2-1/2\" BSPT", TPI: 11, MajorDiameter: "75.184mm", MinorDiameter: "72.226mm", TapDrill: "72.5mm"},
	{Type: entity.ThreadBSPT, Size: "R3\" BSPT", TPI: 11, MajorDiameter: "87.884mm", MinorDiameter: "84.926mm", TapDrill: "85.0mm"},
	{Type: entity.ThreadBSPT, Size: "R4\" BSPT", TPI: 11, MajorDiameter: "113.030mm", MinorDiameter: "110.072mm", TapDrill: "110.0mm"},
	{Type: entity.ThreadBSPT, Size: "R5\" BSPT", TPI: 11, MajorDiameter: "138.430mm", MinorDiameter: "135.472mm", TapDrill: "135.5mm"},
}
