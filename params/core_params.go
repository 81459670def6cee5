package params

import "github.com/sarchlab/celerigo/errs"

// CoreParamsData is the full, immutable, read-many problem description
// mirrored identically to host and device (spec §4.1). Every sub-table is
// a plain value struct; cross-space copies are handled by Store, not by
// CoreParamsData itself, so CoreParamsData is always safe to copy.
type CoreParamsData struct {
	Geometry Geometry
	Material MaterialTable
	Particle ParticleTable
	Physics  Physics
	Cutoff   Cutoff
	Rng      Rng
	Sim      Sim
	Volume   Volume
	Surface  Surface
	Wentzel  Wentzel
	Init     Init
}

// CoreParams is the process-wide, build-once problem description (C1). It
// wraps a Store[CoreParamsData] and exposes the host_ref()/device_ref()
// contract of spec §4.1 plus the max_streams/tracks_per_stream accessors
// of spec §6.
type CoreParams struct {
	store *Store[CoreParamsData]

	maxStreams       int
	tracksPerStream  int
	trackOrder       TrackOrder
	initializerCap   int
}

// TrackOrder selects whether track slots are left unsorted or partitioned
// by next discrete action between steps (the `track_order` knob, §6; C9).
type TrackOrder int

const (
	// Unsorted leaves the track-slot indirection array in whatever order
	// slots were populated.
	Unsorted TrackOrder = iota
	// PartitionByAction enables the C9 action-sort step.
	PartitionByAction
)

// HostRef returns the constant-reference view over the host copy of the
// problem data; the reference never invalidates for the CoreParams' lifetime.
func (p *CoreParams) HostRef() *CoreParamsData { return p.store.HostRef() }

// DeviceRef returns the constant-reference view over the device copy, or a
// NotConfigured error if no DeviceContext was enabled at construction.
func (p *CoreParams) DeviceRef() (*CoreParamsData, error) { return p.store.DeviceRef() }

// MaxStreams is the configured upper bound on concurrent streams.
func (p *CoreParams) MaxStreams() int { return p.maxStreams }

// TracksPerStream is the default slot capacity per stream.
func (p *CoreParams) TracksPerStream() int { return p.tracksPerStream }

// TrackOrder reports the configured track-sorting mode.
func (p *CoreParams) TrackOrder() TrackOrder { return p.trackOrder }

// InitializerCapacity is the configured size of the Initializer Buffer (C5).
func (p *CoreParams) InitializerCapacity() int { return p.initializerCap }

// Validate checks the cross-field invariants a CoreParams must satisfy
// before it can back a Stepper: a ConfigurationError (spec §7) is returned
// for anything a build-time check can catch instead of letting it surface
// mid-run as an InvariantFailure.
func (p *CoreParams) Validate() error {
	if p.maxStreams <= 0 {
		return errs.Configuration("core-params", "max_streams must be positive, got %d", p.maxStreams)
	}
	if p.tracksPerStream <= 0 {
		return errs.Configuration("core-params", "tracks_per_stream must be positive, got %d", p.tracksPerStream)
	}
	if p.initializerCap <= 0 {
		return errs.Configuration("core-params", "initializer_capacity must be positive, got %d", p.initializerCap)
	}
	data := p.HostRef()
	if len(data.Volume.HasField) != 0 && len(data.Volume.HasField) != data.Geometry.NumVolumes() {
		return errs.Configuration("core-params",
			"has_field mask length %d does not match volume count %d",
			len(data.Volume.HasField), data.Geometry.NumVolumes())
	}
	return nil
}
