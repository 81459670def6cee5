package params

import "github.com/sarchlab/celerigo/ids"

// Particle describes one particle type's static properties (mass, charge,
// and whether it is tracked in a magnetic field). The specific particle
// list (electron, positron, gamma, muon, optical photon, ...) is supplied
// by the caller; this table makes no assumption about which particle types
// exist beyond what spec §1 enumerates as in scope.
type Particle struct {
	Name          string
	MassMeV       float64
	ChargeEli     float64 // charge in units of the elementary charge
	IsStable      bool
	IsOptical     bool // true for the optical-photon particle type used by C10
}

// Neutral reports whether the particle type carries no charge, and so is
// unaffected by any magnetic field (relevant to the along-step "neutral"
// assembly and to the uniform-field has_field mask in spec §4.8).
func (p Particle) Neutral() bool { return p.ChargeEli == 0 }

// ParticleTable is the immutable, read-many particle-type sub-table,
// indexed by ParticleId.
type ParticleTable struct {
	Particles []Particle
}

// NumParticles reports the number of defined particle types.
func (p *ParticleTable) NumParticles() int { return len(p.Particles) }

// Get returns the particle-type definition for id. Callers are expected to
// only pass ids that Valid(); an out-of-range id returns the zero Particle.
func (p *ParticleTable) Get(id ids.ParticleId) Particle {
	i := id.Get()
	if i < 0 || i >= len(p.Particles) {
		return Particle{}
	}
	return p.Particles[i]
}
