// Package viewmodel turns raw dashboard payloads into presentation-ready
// projections: KPI sets, funnels, distributions, leaderboards, insight
// cards, time series and activity lists.
//
// Derivations are pure functions of (payload, now). They never mutate the
// payload and never fail; missing pieces fall back to 0, "N/A" or an
// empty list. Callers cache results with memo.Memo keyed by the payload
// pointer.
package viewmodel
