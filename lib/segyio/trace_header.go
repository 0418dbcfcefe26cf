package segyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// TraceHeaderSize is the size of the standard trace header and of every
// extended trace header.
const TraceHeaderSize = 240

// TraceHeader has the same layout as a raw 240-byte trace header.
type TraceHeader struct {
	TraceNoLine               int32
	TraceNoFile               int32
	OriginalFieldRecordNo     int32
	TraceNoFieldRecord        int32
	SourcePoint               int32
	CDP                       int32
	TraceNoEnsemble           int32
	TraceIDCode               int16
	VerticallySummedTraces    int16
	HorizontallyStackedTraces int16
	DataUse                   int16
	SourceReceiverDistance    int32
	ReceiverElevation         int32
	SurfaceElevationAtSource  int32
	SourceDepth               int32
	DatumAtReceiver           int32
	DatumAtSource             int32
	WaterDepthAtSource        int32
	WaterDepthAtReceiver      int32
	ElevationScalar           int16
	CoordinateScalar          int16
	SourceX                   int32
	SourceY                   int32
	GroupX                    int32
	GroupY                    int32
	CoordinateUnit            int16
	WeatheringVelocity        int16
	SubweatheringVelocity     int16
	UpholeTimeSource          int16
	UpholeTimeGroup           int16
	SourceStaticCorrection    int16
	GroupStaticCorrection     int16
	TotalStaticCorrection     int16
	LagTimeA                  int16
	LagTimeB                  int16
	DelayRecordingTime        int16
	MuteStart                 int16
	MuteEnd                   int16
	SampleCount               uint16
	SampleInterval            uint16
	GainType                  int16
	InstrumentGainConstant    int16
	InstrumentInitialGain     int16
	Correlated                int16
	SweepFreqStart            int16
	SweepFreqEnd              int16
	SweepLength               int16
	SweepType                 int16
	SweepTraceTaperStart      int16
	SweepTraceTaperEnd        int16
	TaperType                 int16
	AliasFilterFreq           int16
	AliasFilterSlope          int16
	NotchFilterFreq           int16
	NotchFilterSlope          int16
	LowCutFreq                int16
	HighCutFreq               int16
	LowCutSlope               int16
	HighCutSlope              int16
	YearRecorded              int16
	DayRecorded               int16
	HourRecorded              int16
	MinuteRecorded            int16
	SecondRecorded            int16
	TimeBasisCode             int16
	TraceWeightingFactor      int16
	GeophoneGroupNoRoll1      int16
	GeophoneGroupNoFirstTrace int16
	GeophoneGroupNoLastTrace  int16
	GapSize                   int16
	OverTravel                int16
	CdpX                      int32
	CdpY                      int32
	Inline                    int32
	Crossline                 int32
	SpNo                      int32
	SpScalar                  int16
	TraceValueUnit            int16
	TransductionConstant      int32
	TransductionExponent      int16
	TransductionUnits         int16
	DeviceID                  int16
	TimeScalar                int16
	SourceType                int16
	SourceDirectionVertical   int16
	SourceDirectionCrossline  int16
	SourceDirectionInline     int16
	SourceMeasurement         int32
	SourceMeasurementExponent int16
	SourceMeasurementUnit     int16
	// HeaderName is "SEG00000" in revision 2 files. Older files often leave
	// it blank or put other data here.
	HeaderName [8]byte
}

// ExtendedTraceHeader has the same layout as the first revision 2 extended
// trace header.
type ExtendedTraceHeader struct {
	TraceNoLine                uint64
	TraceNoFile                uint64
	OriginalFieldRecordNo      uint64
	CDP                        uint64
	ReceiverElevation          float64
	ReceiverDepth              float64
	SurfaceElevationAtSource   float64
	SourceDepth                float64
	DatumAtReceiver            float64
	DatumAtSource              float64
	WaterDepthAtSource         float64
	WaterDepthAtReceiver       float64
	SourceX                    float64
	SourceY                    float64
	GroupX                     float64
	GroupY                     float64
	SourceReceiverDistance     float64
	SampleCount                uint32
	Nanoseconds                int32
	SampleInterval             float64
	CableNumber                int32
	AdditionalTraceHeaderCount uint16
	LastTraceFlag              int16
	CdpX                       float64
	CdpY                       float64
	_                          [56]byte
	HeaderName                 [8]byte
}

func decodeTraceHeader(b []byte, order binary.ByteOrder) (*TraceHeader, error) {
	hd := &TraceHeader{}
	if err := binary.Read(bytes.NewReader(b), order, hd); err != nil {
		return nil, fmt.Errorf("could not decode trace header: %w", err)
	}
	return hd, nil
}

func decodeExtendedTraceHeader(
	b []byte, order binary.ByteOrder,
) (*ExtendedTraceHeader, error) {
	hd := &ExtendedTraceHeader{}
	if err := binary.Read(bytes.NewReader(b), order, hd); err != nil {
		return nil, fmt.Errorf("could not decode extended trace header: %w", err)
	}
	return hd, nil
}

// ApplyScalar scales v by a SEG-Y scalar: positive scalars multiply, negative
// scalars divide by their magnitude, and zero leaves v unchanged.
func ApplyScalar(v float64, scalar int16) float64 {
	switch {
	case scalar > 0:
		return v * float64(scalar)
	case scalar < 0:
		return v / -float64(scalar)
	}
	return v
}

// Coordinates returns the (x, y) pair stored at loc. Unless raw is true, the
// coordinate scalar is applied.
func (hd *TraceHeader) Coordinates(loc NavLocation, raw bool) (x, y float64) {
	var ix, iy int32
	switch loc {
	case NavSource:
		ix, iy = hd.SourceX, hd.SourceY
	case NavGroup:
		ix, iy = hd.GroupX, hd.GroupY
	default:
		ix, iy = hd.CdpX, hd.CdpY
	}
	if raw {
		return float64(ix), float64(iy)
	}
	return ApplyScalar(float64(ix), hd.CoordinateScalar),
		ApplyScalar(float64(iy), hd.CoordinateScalar)
}

// ShotPoint returns the shot point number. Unless raw is true, the shot
// point scalar is applied.
func (hd *TraceHeader) ShotPoint(raw bool) float64 {
	if raw {
		return float64(hd.SpNo)
	}
	return ApplyScalar(float64(hd.SpNo), hd.SpScalar)
}

// Name returns the header name with trailing blanks and NULs removed.
func (hd *TraceHeader) Name() string {
	return strings.TrimRight(string(hd.HeaderName[:]), " \x00")
}
