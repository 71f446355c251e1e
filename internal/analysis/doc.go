// Package analysis characterizes stored report channels.
//
// The package includes tools for post-processing a run:
//
//   - [PowerSpectrum]: one-sided amplitude spectrum of a channel
//   - [Summarize]: mean, spread and range of a channel
//   - [NewPortrait]: one channel plotted against another, e.g. a
//     torque-angle loop
//   - [Crossings]: samples of two channels at each upward crossing of a
//     trigger channel, e.g. once per gait cycle
//
// # Dominant Frequency
//
// The strongest non-DC component of a periodic load shows up directly:
//
//	spec, err := analysis.PowerSpectrum(torque, 1/dt, analysis.Hann)
//	f, amp := spec.Dominant()
package analysis
