package simulation

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// AgentSnapshot is what a renderer needs to draw one agent.
type AgentSnapshot struct {
	FlockID    string
	FlockName  string
	Position   geometry.Vector2D
	Heading    geometry.Vector2D
	Size       int
	Edge       EdgePolicy
	Appearance Appearance
}

// Snapshot returns every agent, flock by flock in creation order.
// Values are copies: holding on to a snapshot never exposes a later tick.
func (w *World) Snapshot() []AgentSnapshot {
	out := make([]AgentSnapshot, 0, w.AgentCount())
	for _, f := range w.flocks {
		for _, a := range f.agents {
			out = append(out, AgentSnapshot{
				FlockID:    f.id,
				FlockName:  f.name,
				Position:   a.Position,
				Heading:    a.Heading(),
				Size:       a.Size,
				Edge:       a.Edge,
				Appearance: a.Appearance,
			})
		}
	}
	return out
}

// FlockStats summarises a flock for status lines.
type FlockStats struct {
	ID       string
	Name     string
	Count    int
	Centroid geometry.Vector2D
	// Polarization is |mean heading|: 1 when every member flies the same way, near 0 when disordered.
	Polarization float64
	Radii        Radii
	Weights      Weights
}

// Stats returns one summary per flock in creation order.
func (w *World) Stats() []FlockStats {
	out := make([]FlockStats, len(w.flocks))
	for i, f := range w.flocks {
		s := FlockStats{ID: f.id, Name: f.name, Count: f.Len(), Radii: f.radii, Weights: f.weights}
		if n := f.Len(); n > 0 {
			pos, head := geometry.Zero, geometry.Zero
			for _, a := range f.agents {
				pos = pos.Add(a.Position)
				head = head.Add(a.Heading())
			}
			s.Centroid = pos.Mul(1 / float64(n))
			s.Polarization = head.Mul(1 / float64(n)).Len()
		}
		out[i] = s
	}
	return out
}
