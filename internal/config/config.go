package config

// Section is the config store section holding the depth-of-field keys.
const Section = "DepthOfField"

// DepthOfField is the persisted depth-of-field parameter set.
type DepthOfField struct {
	MaxBokehSize                 float64
	HighlightBoostFactor         float64
	HighlightGammaFactor         float64
	MagnificationAreaWidth       float64
	MagnificationAreaHeight      float64
	AnamorphicFactor             float64
	RingAngleOffset              float64
	RotationAngle                float64
	RoundFactor                  float64
	SphericalAberrationFactor    float64
	SphericalAberrationDimFactor float64
	NumberOfVertices             int
	Quality                      int
	NumberOfPointsInnermostRing  int
	NumberOfFramesToWaitPerFrame int
	ShowProgressBarAsOverlay     bool
	BlurType                     int
}

// Defaults returns the compiled-in parameter set.
func Defaults() DepthOfField {
	return DepthOfField{
		MaxBokehSize:                 0.2,
		HighlightBoostFactor:         0.9,
		HighlightGammaFactor:         2.2,
		MagnificationAreaWidth:       0.1,
		MagnificationAreaHeight:      0.1,
		AnamorphicFactor:             1.0,
		NumberOfVertices:             6,
		Quality:                      4,
		NumberOfPointsInnermostRing:  3,
		NumberOfFramesToWaitPerFrame: 1,
		ShowProgressBarAsOverlay:     true,
	}
}

// Load copies every key present in the store's section into cfg. Missing
// or unparsable keys keep the value cfg already holds.
func Load(s *Store, cfg *DepthOfField) {
	floats := []struct {
		key string
		dst *float64
	}{
		{"MaxBokehSize", &cfg.MaxBokehSize},
		{"HighlightBoostFactor", &cfg.HighlightBoostFactor},
		{"HighlightGammaFactor", &cfg.HighlightGammaFactor},
		{"MagnificationAreaWidth", &cfg.MagnificationAreaWidth},
		{"MagnificationAreaHeight", &cfg.MagnificationAreaHeight},
		{"AnamorphicFactor", &cfg.AnamorphicFactor},
		{"RingAngleOffset", &cfg.RingAngleOffset},
		{"RotationAngle", &cfg.RotationAngle},
		{"RoundFactor", &cfg.RoundFactor},
		{"SphericalAberrationFactor", &cfg.SphericalAberrationFactor},
		{"SphericalAberrationDimFactor", &cfg.SphericalAberrationDimFactor},
	}
	for _, f := range floats {
		if v, ok := s.Float(Section, f.key); ok {
			*f.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"NumberOfVertices", &cfg.NumberOfVertices},
		{"Quality", &cfg.Quality},
		{"NumberOfPointsInnermostRing", &cfg.NumberOfPointsInnermostRing},
		{"NumberOfFramesToWaitPerFrame", &cfg.NumberOfFramesToWaitPerFrame},
		{"BlurType", &cfg.BlurType},
	}
	for _, i := range ints {
		if v, ok := s.Int(Section, i.key); ok {
			*i.dst = v
		}
	}

	if v, ok := s.Bool(Section, "ShowProgressBarAsOverlay"); ok {
		cfg.ShowProgressBarAsOverlay = v
	}
}

// Save writes every key of cfg into the store's section.
func Save(s *Store, cfg DepthOfField) {
	s.SetFloat(Section, "MaxBokehSize", cfg.MaxBokehSize)
	s.SetFloat(Section, "HighlightBoostFactor", cfg.HighlightBoostFactor)
	s.SetFloat(Section, "HighlightGammaFactor", cfg.HighlightGammaFactor)
	s.SetFloat(Section, "MagnificationAreaWidth", cfg.MagnificationAreaWidth)
	s.SetFloat(Section, "MagnificationAreaHeight", cfg.MagnificationAreaHeight)
	s.SetFloat(Section, "AnamorphicFactor", cfg.AnamorphicFactor)
	s.SetFloat(Section, "RingAngleOffset", cfg.RingAngleOffset)
	s.SetFloat(Section, "RotationAngle", cfg.RotationAngle)
	s.SetFloat(Section, "RoundFactor", cfg.RoundFactor)
	s.SetFloat(Section, "SphericalAberrationFactor", cfg.SphericalAberrationFactor)
	s.SetFloat(Section, "SphericalAberrationDimFactor", cfg.SphericalAberrationDimFactor)
	s.SetInt(Section, "NumberOfVertices", cfg.NumberOfVertices)
	s.SetInt(Section, "Quality", cfg.Quality)
	s.SetInt(Section, "NumberOfPointsInnermostRing", cfg.NumberOfPointsInnermostRing)
	s.SetInt(Section, "NumberOfFramesToWaitPerFrame", cfg.NumberOfFramesToWaitPerFrame)
	s.SetBool(Section, "ShowProgressBarAsOverlay", cfg.ShowProgressBarAsOverlay)
	s.SetInt(Section, "BlurType", cfg.BlurType)
}
