package particle

import (
	"encoding/xml"
	"fmt"
)

// ParseParticleXML parses a particle configuration XML document.
//
// Parameters:
//   - data: raw XML bytes (read from disk or from the embedded FS)
//
// Returns:
//   - *ParticleConfig: Parsed configuration containing all type records
//   - error: Any error encountered during XML parsing
//
// Example usage:
//
//	data, _ := os.ReadFile("data/particles.xml")
//	config, err := ParseParticleXML(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Loaded %d emitter types\n", len(config.Types))
func ParseParticleXML(data []byte) (*ParticleConfig, error) {
	var config ParticleConfig
	if err := xml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse particle XML: %w", err)
	}

	// Validate that we parsed at least one type record
	if len(config.Types) == 0 {
		return nil, fmt.Errorf("particle XML contains no <type> records")
	}

	for i, t := range config.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("particle XML <type> #%d has no name attribute", i)
		}
	}

	return &config, nil
}

// Float looks up a numeric attribute of a section.
// Returns ok=false when the section or the attribute is missing.
func (s *Section) Float(name string) (value float64, ok bool, err error) {
	raw, found := s.Attr(name)
	if !found {
		return 0, false, nil
	}
	value, err = ParseFloat(raw)
	if err != nil {
		return 0, true, fmt.Errorf("attribute %s: %w", name, err)
	}
	return value, true, nil
}

// Pair looks up a min/max attribute pair. The pair may also be given as a
// single range attribute (e.g. range="[30 60]"), which is used only when
// both explicit attributes are absent.
func (s *Section) Pair(minName, maxName, rangeName string) (min, max *float64, err error) {
	if minV, ok, err := s.Float(minName); err != nil {
		return nil, nil, err
	} else if ok {
		min = &minV
	}
	if maxV, ok, err := s.Float(maxName); err != nil {
		return nil, nil, err
	} else if ok {
		max = &maxV
	}

	if min == nil && max == nil && rangeName != "" {
		if raw, found := s.Attr(rangeName); found {
			lo, hi, err := ParseRange(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("attribute %s: %w", rangeName, err)
			}
			return &lo, &hi, nil
		}
	}
	return min, max, nil
}
