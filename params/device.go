package params

import (
	"sync"

	"github.com/sarchlab/celerigo/errs"
	"github.com/sarchlab/celerigo/internal/logx"
)

var log = logx.For("params")

// MemSpace tags which memory space a reference or value belongs to.
type MemSpace int

const (
	// Host is the always-present memory space.
	Host MemSpace = iota
	// Device is the accelerator memory space, present only when a
	// DeviceContext has been initialized.
	Device
)

func (m MemSpace) String() string {
	if m == Device {
		return "device"
	}
	return "host"
}

type lifecycleState int

const (
	lifecycleUninit lifecycleState = iota
	lifecycleReady
	lifecycleTornDown
)

// DeviceContext is the process-wide device handle described in spec §4.1
// and §9: it gates whether ParamsDataStore mirrors data to a device copy
// and hands out per-stream handles. Its lifecycle is strictly
// init -> create_streams -> teardown; static destructors must never touch
// it (callers are responsible for calling Teardown explicitly before the
// process exits).
type DeviceContext struct {
	mu      sync.Mutex
	state   lifecycleState
	streams int
}

// NewDeviceContext returns an uninitialized context; call Init to use it.
// Passing nil to any function that accepts a *DeviceContext means "no
// device available", which is always a legal, supported configuration.
func NewDeviceContext() *DeviceContext {
	return &DeviceContext{}
}

// Init transitions the context from uninitialized to ready. Calling Init
// twice, or Init after Teardown, is a ConfigurationError.
func (d *DeviceContext) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != lifecycleUninit {
		return errs.Configuration("device-context", "Init called in state %d", d.state)
	}
	d.state = lifecycleReady
	log.Debug("device context initialized")
	return nil
}

// CreateStream allocates a new device-side stream/queue slot and returns its
// ordinal. It is a ConfigurationError to call this before Init or after
// Teardown.
func (d *DeviceContext) CreateStream() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != lifecycleReady {
		return 0, errs.Configuration("device-context", "CreateStream called outside Ready state")
	}
	id := d.streams
	d.streams++
	return id, nil
}

// Teardown releases the device context. It is idempotent: tearing down an
// already-torn-down context is a no-op. Tearing down a never-initialized
// context also leaves it torn down, so a later Init fails.
func (d *DeviceContext) Teardown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = lifecycleTornDown
	log.Debug("device context torn down", "streams", d.streams)
}

// Enabled reports whether this context is presently accepting device work.
func (d *DeviceContext) Enabled() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == lifecycleReady
}

// Store mirrors a host value of T to a device copy when dc is enabled,
// matching the "value | reference | const_reference" ParamsDataStore
// contract of spec §4.1: after construction the device copy is bitwise
// equivalent to the host copy, and references returned from HostRef/DeviceRef
// never invalidate for the store's lifetime.
type Store[T any] struct {
	host      T
	device    T
	hasDevice bool
}

// NewStore builds a ParamsDataStore, copying host to a device mirror
// immediately when dc is enabled. T must be safe to copy by value (plain
// data, no owned pointers) as every sub-table in this package is.
func NewStore[T any](host T, dc *DeviceContext) *Store[T] {
	s := &Store[T]{host: host}
	if dc.Enabled() {
		s.device = host
		s.hasDevice = true
	}
	return s
}

// HostRef returns a stable reference to the host-space copy.
func (s *Store[T]) HostRef() *T { return &s.host }

// DeviceRef returns a stable reference to the device-space copy, or a
// NotConfigured error if no device was enabled at construction.
func (s *Store[T]) DeviceRef() (*T, error) {
	if !s.hasDevice {
		return nil, errs.NotConfiguredErr("params-store", "device mirror")
	}
	return &s.device, nil
}

// Ref returns the reference for the requested memory space.
func (s *Store[T]) Ref(space MemSpace) (*T, error) {
	if space == Host {
		return s.HostRef(), nil
	}
	return s.DeviceRef()
}
