package model

// Sample is one measurement of a node's inlet/outlet state.
type Sample struct {
	// T is seconds since the Unix epoch (UTC).
	T float64
	// Cin is the inflow concentration in the series' canonical unit.
	Cin float64
	// Cout is the outflow concentration in the same unit as Cin.
	Cout float64
	// Q is the discharge in m3/s.
	Q float64
}

// TimeSeries is an ordered sequence of samples for one node:contaminant key.
type TimeSeries []Sample
