// Package spatial provides the frame algebra shared by markers, actuator
// paths and joints.
//
// Vectors are [r3.Vec] values and orientations are unit [quat.Number]
// values with Real holding the scalar part. Angles cross the package API
// in degrees where the function name says so (FromEuler, ToEuler) and in
// radians everywhere else.
//
//   - [Rotate]: closed-form rotation of a vector by a quaternion
//   - [FromEuler], [ToEuler]: intrinsic XYZ Euler angles
//   - [FromAxisAngle], [ToAxisAngle]: axis-angle conversion
//   - [FindRotation]: shortest-arc rotation between two vectors
//   - [Slerp]: spherical interpolation with a lerp fallback
package spatial
