// Package load supplies the reaction feedback joints read each step, in
// place of a constraint solver.
//
// Sources implement [Source]:
//
//   - [None]: zero feedback on every joint
//   - [Manual]: feedback set directly by the caller (live view, tests)
//   - [Periodic]: a constant plus a sinusoid, from model Load elements
//   - [Table]: one source per joint name
//
// # Usage
//
//	tbl := load.NewTable()
//	tbl.Set("knee", &load.Periodic{Force: r3.Vec{Z: -700}})
//	fb := tbl.Feedback("knee", t)
//
// Body 2 always receives the equal and opposite reaction.
package load
