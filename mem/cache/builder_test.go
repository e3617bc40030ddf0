package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/mem/addressing"
	"github.com/sarchlab/cachesim/mem/backing"
)

var _ = Describe("Builder", func() {
	It("should build a direct-mapped cache with the preset layout", func() {
		c := MakeBuilder().BuildDirectMapped("DM")

		Expect(c.Name()).To(Equal("DM"))
		Expect(c.Layout()).To(Equal(addressing.DirectMappedLayout))
		Expect(c.NumLines()).To(Equal(32))
	})

	It("should build a set-associative cache with the preset layout", func() {
		c := MakeBuilder().BuildSetAssociative("SA")

		Expect(c.Name()).To(Equal("SA"))
		Expect(c.Layout()).To(Equal(addressing.SetAssociativeLayout))
		Expect(c.NumSets()).To(Equal(16))
		Expect(c.NumWays()).To(Equal(DefaultNumWays))
	})

	It("should use a custom layout", func() {
		l := addressing.Layout{TagBits: 4, IndexBits: 1, OffsetBits: 1}
		c := MakeBuilder().
			WithLayout(l).
			WithWayAssociativity(2).
			BuildSetAssociative("SA")

		Expect(c.NumSets()).To(Equal(2))
		Expect(c.NumWays()).To(Equal(2))
		Expect(c.Way(1, 1).Words).To(HaveLen(2))
	})

	It("should satisfy the Cache interface", func() {
		var caches []Cache

		caches = append(caches,
			MakeBuilder().BuildDirectMapped("DM"),
			MakeBuilder().BuildSetAssociative("SA"),
		)

		Expect(caches).To(HaveLen(2))
	})

	It("should panic on a name that breaks the naming convention", func() {
		Expect(func() { MakeBuilder().BuildDirectMapped("dm_cache") }).
			To(Panic())
	})

	It("should panic on an unknown replace strategy", func() {
		Expect(func() {
			MakeBuilder().WithReplaceStrategy("fifo").BuildSetAssociative("SA")
		}).To(Panic())
	})

	It("should panic when a set has no way", func() {
		Expect(func() {
			MakeBuilder().WithWayAssociativity(0).BuildSetAssociative("SA")
		}).To(Panic())
	})

	It("should panic on a backing store with another line size", func() {
		store := backing.NewStorageForLayout(addressing.SetAssociativeLayout)

		Expect(func() {
			MakeBuilder().WithBackingStore(store).BuildDirectMapped("DM")
		}).To(Panic())
	})

	It("should panic on an invalid layout", func() {
		Expect(func() {
			MakeBuilder().
				WithLayout(addressing.Layout{TagBits: 64}).
				BuildDirectMapped("DM")
		}).To(Panic())
	})
})
