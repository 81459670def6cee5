package trackinit

import (
	"github.com/sarchlab/celerigo/ids"
	"github.com/sarchlab/celerigo/initializer"
)

// Locator is the minimal geometry-navigation capability Track
// Initialization needs from the external geometry collaborator (spec §1):
// resolving which volume a bare position falls in. This is only consulted
// when a faster path is unavailable — namely, when materializing a
// caller-supplied Primary (which carries no volume, by the wire-compatible
// record in spec §6) or a secondary whose parent-slot back-reference has
// already been discarded. Secondaries materialized in the same step they
// were produced skip this entirely and copy the parent's volume/stack
// directly (spec §4.7: "this avoids re-navigating").
type Locator interface {
	Locate(position initializer.Real3) ids.VolumeId
}

// ConstantLocator is a trivial Locator that always resolves to the same
// volume; useful for single-volume test problems, where geometry
// navigation genuinely has nothing to do.
type ConstantLocator struct {
	Volume ids.VolumeId
}

// Locate implements Locator.
func (c ConstantLocator) Locate(initializer.Real3) ids.VolumeId { return c.Volume }
