package segyio

// SurveyKind distinguishes 2D lines from 3D volumes.
type SurveyKind int

const (
	Kind2D SurveyKind = iota
	Kind3D
)

func (k SurveyKind) String() string {
	if k == Kind3D {
		return "3D"
	}
	return "2D"
}

// Survey is an open file with a known survey kind. The two implementations
// only differ in how they derive geometry.
type Survey interface {
	Kind() SurveyKind
	// Geometry samples every stride-th trace. 2D surveys give the line
	// through the samples and 3D surveys give their convex hull.
	Geometry(stride int, loc NavLocation) (*Geometry, error)
	File() *File
	Close() error
}

// Survey2D is a single 2D seismic line.
type Survey2D struct {
	file *File
}

// Survey3D is a 3D seismic volume.
type Survey3D struct {
	file *File
}

var (
	_ Survey = &Survey2D{}
	_ Survey = &Survey3D{}
)

// Open2D opens a 2D line.
func Open2D(path string, opts *Options) (*Survey2D, error) {
	f, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &Survey2D{f}, nil
}

// Open3D opens a 3D volume.
func Open3D(path string, opts *Options) (*Survey3D, error) {
	f, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	return &Survey3D{f}, nil
}

// NewSurvey wraps an already open file.
func NewSurvey(f *File, kind SurveyKind) Survey {
	if kind == Kind3D {
		return &Survey3D{f}
	}
	return &Survey2D{f}
}

func (s *Survey2D) Kind() SurveyKind { return Kind2D }
func (s *Survey2D) File() *File      { return s.file }
func (s *Survey2D) Close() error     { return s.file.Close() }

// Nav returns the navigation of every stride-th trace.
func (s *Survey2D) Nav(stride int, loc NavLocation) ([]NavSample, error) {
	return s.file.SampledNav2D(stride, loc)
}

func (s *Survey2D) Geometry(stride int, loc NavLocation) (*Geometry, error) {
	samples, err := s.file.SampledNav2D(stride, loc)
	if err != nil {
		return nil, err
	}
	return LineGeometry(samples), nil
}

func (s *Survey3D) Kind() SurveyKind { return Kind3D }
func (s *Survey3D) File() *File      { return s.file }
func (s *Survey3D) Close() error     { return s.file.Close() }

func (s *Survey3D) Geometry(stride int, loc NavLocation) (*Geometry, error) {
	return s.file.SampledNav3D(stride, loc)
}
