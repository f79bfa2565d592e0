// Package profile loads the machine profile that drives toolpath generation.
//
// A profile describes one printer/material combination: the base feed, move and
// flow rates, the deposition geometry (layer height, extrusion width), the build
// envelope (max height, max radius, max overhang) and the two raft passes. It
// also carries the literal command strings the printer expects for starting and
// stopping extrusion and for setting the flow rate.
//
// # File Format
//
// Profiles are YAML documents with five sections:
//
//	comments:
//	  printer_manufacturer: Bits from Bytes Ltd
//	  printer_model: BfB3000
//	  extruded_material: ABS
//	printer:
//	  feed_rate: 960
//	  move_rate: 30000
//	  flow_rate: 200
//	  layer_height: 0.25
//	  extrusion_width: 0.5
//	  max_height: 100
//	  max_radius: 80
//	  max_overhang: 45
//	gcode:
//	  gcode_flow: M108
//	  gcode_start: M101
//	  gcode_stop: M103
//	raft_base:
//	  feed_multiplier: 0.75
//	  flow_multiplier: 3.00
//	  cruise_height: 0.7
//	raft_interface:
//	  feed_multiplier: 1.00
//	  flow_multiplier: 1.50
//	  cruise_height: 1.0
//
// Unknown keys are rejected. Every numeric and command field is required; the
// comments section is informational and may be omitted.
//
// # Error Handling
//
// All failures are reported as *ConfigError so callers can distinguish a bad
// profile from geometry or image problems with errors.As.
package profile
