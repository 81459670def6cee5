package params

// Builder assembles a CoreParams value, following the fluent WithX(...)
// pattern of the teacher's core/builder.go and config/config.go: every
// With method returns a new Builder value rather than mutating in place,
// and Build panics on a detected misconfiguration (ConfigurationError),
// matching core/builder.go's "Need at least 4 directions" style check.
type Builder struct {
	device *DeviceContext

	maxStreams      int
	tracksPerStream int
	initializerCap  int
	trackOrder      TrackOrder

	geometry Geometry
	material MaterialTable
	particle ParticleTable
	physics  Physics
	cutoff   Cutoff
	rng      Rng
	sim      Sim
	volume   Volume
	surface  Surface
	wentzel  Wentzel
	init     Init
}

// NewBuilder returns a Builder with the spec-mandated defaults: one stream,
// unsorted track order, and no device.
func NewBuilder() Builder {
	return Builder{
		maxStreams:      1,
		tracksPerStream: 0,
		initializerCap:  0,
		trackOrder:      Unsorted,
	}
}

// WithDevice attaches the process-wide device context that gates whether
// the resulting CoreParams mirrors data to a device copy.
func (b Builder) WithDevice(dc *DeviceContext) Builder {
	b.device = dc
	return b
}

// WithMaxStreams sets the `max_streams` knob.
func (b Builder) WithMaxStreams(n int) Builder {
	b.maxStreams = n
	return b
}

// WithTracksPerStream sets the `tracks_per_stream` knob.
func (b Builder) WithTracksPerStream(n int) Builder {
	b.tracksPerStream = n
	return b
}

// WithInitializerCapacity sets the `initializer_capacity` knob.
func (b Builder) WithInitializerCapacity(n int) Builder {
	b.initializerCap = n
	return b
}

// WithTrackOrder sets the `track_order` knob.
func (b Builder) WithTrackOrder(order TrackOrder) Builder {
	b.trackOrder = order
	return b
}

// WithGeometry sets the geometry sub-table.
func (b Builder) WithGeometry(g Geometry) Builder {
	b.geometry = g
	return b
}

// WithMaterial sets the material sub-table.
func (b Builder) WithMaterial(m MaterialTable) Builder {
	b.material = m
	return b
}

// WithParticle sets the particle sub-table.
func (b Builder) WithParticle(p ParticleTable) Builder {
	b.particle = p
	return b
}

// WithPhysics sets the physics sub-table.
func (b Builder) WithPhysics(p Physics) Builder {
	b.physics = p
	return b
}

// WithCutoff sets the cutoff sub-table.
func (b Builder) WithCutoff(c Cutoff) Builder {
	b.cutoff = c
	return b
}

// WithRng sets the rng sub-table.
func (b Builder) WithRng(r Rng) Builder {
	b.rng = r
	return b
}

// WithSim sets the sim sub-table.
func (b Builder) WithSim(s Sim) Builder {
	b.sim = s
	return b
}

// WithVolume sets the volume sub-table.
func (b Builder) WithVolume(v Volume) Builder {
	b.volume = v
	return b
}

// WithSurface sets the surface sub-table.
func (b Builder) WithSurface(s Surface) Builder {
	b.surface = s
	return b
}

// WithWentzel sets the Wentzel MSC sub-table.
func (b Builder) WithWentzel(w Wentzel) Builder {
	b.wentzel = w
	return b
}

// WithInit sets the track-init defaults sub-table.
func (b Builder) WithInit(i Init) Builder {
	b.init = i
	return b
}

// Build assembles the CoreParams and validates it, panicking with a
// *errs.CoreError of kind ConfigurationError on any detected misconfiguration.
func (b Builder) Build() *CoreParams {
	data := CoreParamsData{
		Geometry: b.geometry,
		Material: b.material,
		Particle: b.particle,
		Physics:  b.physics,
		Cutoff:   b.cutoff,
		Rng:      b.rng,
		Sim:      b.sim,
		Volume:   b.volume,
		Surface:  b.surface,
		Wentzel:  b.wentzel,
		Init:     b.init,
	}

	p := &CoreParams{
		store:           NewStore(data, b.device),
		maxStreams:      b.maxStreams,
		tracksPerStream: b.tracksPerStream,
		initializerCap:  b.initializerCap,
		trackOrder:      b.trackOrder,
	}

	if err := p.Validate(); err != nil {
		panic(err)
	}

	log.Info("core params built",
		"max_streams", p.maxStreams,
		"tracks_per_stream", p.tracksPerStream,
		"initializer_capacity", p.initializerCap,
		"track_order", p.trackOrder)

	return p
}
