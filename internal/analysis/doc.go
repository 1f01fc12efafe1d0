// Package analysis extracts periodicity from recorded runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a uniformly sampled series
//   - [DominantFrequency]: strongest non-DC frequency in Hz
//   - [ZeroCrossingPeriod]: mean period from downward zero crossings
//   - [NewPhasePortrait]: two state components plotted against each other
//
// A pendulum run sampled every frame can be checked against its
// theoretical period:
//
//	f := analysis.DominantFrequency(theta, 1/dynamo.FrameDt)
//	T, ok := analysis.ZeroCrossingPeriod(times, theta)
package analysis
