// Package job ties a machine profile, a solid and a piece of artwork into a
// renderable toolpath program.
//
// Prepare does all loading and validation up front: the profile is read,
// the solid is checked against the machine, the image is decoded and
// converted to greyscale, and the optional prefix and suffix files are read.
// Nothing is written until every input is known to be good.
//
// Output is committed atomically. WriteFile renders into a temporary file
// beside the target and renames it into place; WriteBuffered holds the whole
// program in memory before copying it out. A failed or cancelled run never
// leaves a partial program behind.
package job
