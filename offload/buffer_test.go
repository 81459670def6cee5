package offload_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/celerigo/offload"
	"github.com/sarchlab/celerigo/state"
)

var _ = Describe("Buffer", func() {
	It("rejects a non-positive capacity", func() {
		Expect(func() { offload.NewBuffer(0) }).To(Panic())
	})

	It("sums NumPhotons across pending distributions", func() {
		b := offload.NewBuffer(4)
		Expect(b.Push(state.Distribution{NumPhotons: 10}, state.Distribution{NumPhotons: 5})).To(Succeed())
		Expect(b.Len()).To(Equal(2))
		Expect(b.NumPhotons()).To(Equal(15))
	})

	It("refuses to push past capacity", func() {
		b := offload.NewBuffer(2)
		Expect(b.Push(state.Distribution{}, state.Distribution{})).To(Succeed())
		err := b.Push(state.Distribution{})
		Expect(err).To(HaveOccurred())
		Expect(b.Len()).To(Equal(2))
	})

	It("empties on Drain and preserves insertion order", func() {
		b := offload.NewBuffer(4)
		Expect(b.Push(state.Distribution{NumPhotons: 1}, state.Distribution{NumPhotons: 2})).To(Succeed())
		drained := b.Drain()
		Expect(drained).To(HaveLen(2))
		Expect(drained[0].NumPhotons).To(Equal(1))
		Expect(drained[1].NumPhotons).To(Equal(2))
		Expect(b.Len()).To(Equal(0))
	})
})
