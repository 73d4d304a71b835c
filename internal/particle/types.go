// Package particle provides data structures and parsing functionality for
// XML particle emitter configurations.
//
// An XML config file lists one <type> element per emitter type tag. Each
// section of the record (emitter, lifespan, velocity, gravity, position, draw)
// is a child element whose numeric leaves are attributes:
//
//	<particles>
//	  <type name="sparkles">
//	    <emitter amount="20"/>
//	    <lifespan min="30" max="60"/>
//	    <velocity min_vx="-2" max_vx="2" min_vy="-2" max_vy="2"/>
//	    <gravity anchor_x="0" anchor_y="0" accel_x="0.05" accel_y="0.05"/>
//	    <position min_x="-8" max_x="8" min_y="-8" max_y="8"/>
//	    <draw min_w="2" max_w="4" min_h="2" max_h="4" texture="" fade="Linear"/>
//	  </type>
//	</particles>
//
// Attributes stay as strings here; missing attributes are reported by the
// config loader, never defaulted.
package particle

import "encoding/xml"

// ParticleConfig represents the root <particles> element.
type ParticleConfig struct {
	XMLName xml.Name     `xml:"particles"`
	Types   []TypeConfig `xml:"type"`
}

// TypeConfig is the record for one emitter type tag.
type TypeConfig struct {
	Name string `xml:"name,attr"`

	Emitter  *Section `xml:"emitter"`
	Lifespan *Section `xml:"lifespan"`
	Velocity *Section `xml:"velocity"`
	Gravity  *Section `xml:"gravity"`
	Position *Section `xml:"position"`
	Draw     *Section `xml:"draw"`
	Color    *Section `xml:"color"` // optional, r/g/b 0-255
}

// Section holds the raw attributes of one record section.
// A nil *Section means the whole element is missing.
type Section struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// Attr returns the raw value of the named attribute.
func (s *Section) Attr(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, a := range s.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
