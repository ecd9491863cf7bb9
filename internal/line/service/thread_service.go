package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitfantasy/linedash/internal/line/entity"
)

const mmPerInch = 25.4

// Identify defaults and limits.
const (
	DefaultDiameterTolerance = 0.5
	DefaultTPITolerance      = 2.0
	MinDiameterTolerance     = 0.1
)

// Diameter modes for Identify.
const (
	ModeMajor = "major"
	ModeMinor = "minor"
)

// ThreadService answers lookups against the thread reference catalogue.
type ThreadService struct {
	threads []entity.Thread
}

func NewThreadService() *ThreadService {
	return &ThreadService{threads: threadCatalogue}
}

// IdentifyQuery describes a measured thread. TPI 0 matches on diameter only.
type IdentifyQuery struct {
	Diameter     float64 `json:"diameter"`
	TPI          float64 `json:"tpi"`
	Tolerance    float64 `json:"tolerance"`
	TPITolerance float64 `json:"tpi_tolerance"`
	Mode         string  `json:"mode"`
}

// Types lists the thread families in display order.
func (s *ThreadService) Types() []entity.ThreadType {
	return []entity.ThreadType{
		entity.ThreadUNC, entity.ThreadUNF, entity.ThreadUNS, entity.ThreadMetric,
		entity.ThreadBSPP, entity.ThreadBSPT, entity.ThreadBSF, entity.ThreadBSW,
		entity.ThreadNPTF, entity.ThreadNPT,
	}
}

// Search returns the threads whose description contains every
// whitespace-separated term of query, case-insensitively.
func (s *ThreadService) Search(query string) []entity.Thread {
	terms := strings.Fields(strings.ToLower(query))
	out := []entity.Thread{}
	for _, t := range s.threads {
		info := describeThread(t)
		match := true
		for _, term := range terms {
			if !strings.Contains(info, term) {
				match = false
				break
			}
		}
		if match {
			out = append(out, t)
		}
	}
	return out
}

// Identify finds the threads whose major or minor diameter lies within
// tolerance mm of the measurement and, when a TPI is given, whose TPI is
// within the TPI tolerance. Metric pitches are compared as 25.4/pitch.
func (s *ThreadService) Identify(q IdentifyQuery) ([]entity.Thread, error) {
	if !(q.Diameter > 0) {
		return nil, fmt.Errorf("%w: diameter must be positive", ErrInvalidInput)
	}
	mode := q.Mode
	if mode == "" {
		mode = ModeMajor
	}
	if mode != ModeMajor && mode != ModeMinor {
		return nil, fmt.Errorf("%w: mode must be %s or %s", ErrInvalidInput, ModeMajor, ModeMinor)
	}
	tolerance := math.Max(MinDiameterTolerance, q.Tolerance)
	tpiTolerance := math.Max(0, q.TPITolerance)

	out := []entity.Thread{}
	for _, t := range s.threads {
		raw := t.MajorDiameter
		if mode == ModeMinor {
			raw = t.MinorDiameter
		}
		d, ok := DiameterMM(raw)
		if !ok || math.Abs(d-q.Diameter) > tolerance {
			continue
		}
		if q.TPI > 0 {
			tpi := t.TPI
			if t.Type == entity.ThreadMetric && t.Pitch > 0 {
				tpi = mmPerInch / t.Pitch
			}
			if math.Abs(tpi-q.TPI) > tpiTolerance {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

// DiameterMM reads a catalogue diameter. Values carrying an inch mark are
// converted to millimeters.
func DiameterMM(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	num := leadingNumber.FindString(s)
	if num == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(s, `"`) {
		v *= mmPerInch
	}
	return v, true
}

func describeThread(t entity.Thread) string {
	pitch := ""
	if t.Type == entity.ThreadMetric {
		pitch = strconv.FormatFloat(t.Pitch, 'f', -1, 64) + "mm pitch"
	} else {
		tpi := t.TPI
		if tpi == 0 {
			tpi = 1
		}
		pitch = fmt.Sprintf("%s tpi %smm pitch",
			strconv.FormatFloat(t.TPI, 'f', -1, 64), strconv.FormatFloat(mmPerInch/tpi, 'f', 2, 64))
	}
	return strings.ToLower(strings.Join([]string{
		t.Size, t.MajorDiameter, t.MinorDiameter, string(t.Type), t.MetricSize, pitch, t.TapDrill,
	}, " "))
}
