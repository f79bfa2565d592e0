// Package toolpath generates the motion program for an embossed solid of
// revolution.
//
// A Program is built from a machine profile, a validated solid and a
// luminance Sampler. It yields, in order:
//
//   - Raft: up to two zigzag passes over a disc RaftMargin wider than the
//     base, the second perpendicular to the first.
//   - Base: spiral floor layers whose winding reverses each layer.
//   - Shape: the wall, one revolution per layer, with the feed rate of each
//     angular segment set by FeedRate from the sampled luminance.
//
// Instructions are produced lazily by Program.Instructions and can be
// formatted as G-code with Format, Writer or Render:
//
//	p, err := toolpath.NewProgram(machine, spec, sampler, sampler.Segments())
//	if err != nil {
//	    return err
//	}
//	lines, err := toolpath.Render(w, p, prefix, suffix, nil)
//
// Coordinates are in millimetres and feed rates in mm/min. The wall starts
// at +Y and runs counter-clockwise seen from above.
package toolpath
