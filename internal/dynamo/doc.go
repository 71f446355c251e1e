// Package dynamo provides the primitives shared by the integrators, the
// run loop and its consumers.
//
//   - [State]: packed vector of body poses
//   - [Dynamics]: dX/dt = f(X, t)
//   - [Integrator]: advances a State by one fixed step
//   - [Sample]: one row of named report channels
//   - [Metric], [Observer]: per-step consumers of samples
//
// # Thread Safety
//
// None of the types here are safe for concurrent mutation. A run owns its
// state exclusively; independent runs may proceed in parallel.
package dynamo
