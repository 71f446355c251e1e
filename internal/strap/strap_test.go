package strap_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/marker"
	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/strap"
)

func beClose(want r3.Vec) OmegaMatcher {
	return SatisfyAll(
		WithTransform(func(v r3.Vec) float64 { return v.X }, BeNumerically("~", want.X, 1e-12)),
		WithTransform(func(v r3.Vec) float64 { return v.Y }, BeNumerically("~", want.Y, 1e-12)),
		WithTransform(func(v r3.Vec) float64 { return v.Z }, BeNumerically("~", want.Z, 1e-12)),
	)
}

var _ = Describe("Straps", func() {
	var (
		world   *rigid.World
		shank   rigid.BodyID
		markers map[string]*marker.Marker
		add     func(name string, body rigid.BodyID, p r3.Vec) *marker.Marker
		lookup  strap.MarkerLookup
	)

	BeforeEach(func() {
		world = rigid.NewWorld()
		var err error
		shank, err = world.AddBody(rigid.Body{Name: "Shank", Orientation: quat.Number{Real: 1}})
		Expect(err).NotTo(HaveOccurred())
		markers = map[string]*marker.Marker{}
		add = func(name string, body rigid.BodyID, p r3.Vec) *marker.Marker {
			m := marker.New(name, world, body, p, quat.Number{Real: 1})
			markers[name] = m
			return m
		}
		lookup = func(name string) (*marker.Marker, bool) {
			m, ok := markers[name]
			return m, ok
		}
	})

	Describe("TwoPoint", func() {
		It("measures length and pulls the ends toward each other", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			i := add("i", shank, r3.Vec{X: 3, Y: 4})
			s, err := strap.NewTwoPoint("calf", o, i)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Update(0)).To(Succeed())

			Expect(s.Length()).To(Equal(5.0))
			pf := s.PointForces()
			Expect(pf).To(HaveLen(2))
			Expect(pf[1].Direction).To(Equal(r3.Vec{X: 0.6, Y: 0.8}))
			Expect(pf[0].Direction).To(beClose(r3.Vec{X: -0.6, Y: -0.8}))
			Expect(pf[0].Body).To(Equal(rigid.WorldID))
			Expect(pf[1].Body).To(Equal(shank))
			Expect(pf[1].Point).To(Equal(r3.Vec{X: 3, Y: 4}))
		})

		It("follows the body it is attached to", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			i := add("i", shank, r3.Vec{X: 1})
			s, err := strap.NewTwoPoint("calf", o, i)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Update(0)).To(Succeed())
			Expect(s.Length()).To(BeNumerically("~", 1, 1e-15))

			b, err := world.Body(shank)
			Expect(err).NotTo(HaveOccurred())
			b.Position = r3.Vec{X: 1}
			Expect(s.Update(0.5)).To(Succeed())
			Expect(s.Length()).To(BeNumerically("~", 2, 1e-15))
			Expect(s.Velocity()).To(BeNumerically("~", 2, 1e-12))
		})

		It("reports zero velocity until time advances", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			i := add("i", shank, r3.Vec{X: 1})
			s, err := strap.NewTwoPoint("calf", o, i)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Update(0)).To(Succeed())
			Expect(s.Velocity()).To(BeZero())

			b, _ := world.Body(shank)
			b.Position = r3.Vec{X: 4}
			Expect(s.Update(0)).To(Succeed())
			Expect(s.Velocity()).To(BeZero())
			Expect(s.Length()).To(BeNumerically("~", 5, 1e-15))
		})

		It("rejects coincident attachment points", func() {
			o := add("o", rigid.WorldID, r3.Vec{X: 1})
			i := add("i", shank, r3.Vec{X: 1})
			s, err := strap.NewTwoPoint("calf", o, i)
			Expect(err).NotTo(HaveOccurred())
			err = s.Update(0)
			Expect(errors.Is(err, strap.ErrDegenerateSegment)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("calf"))
		})

		It("scales the direction by tension", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			i := add("i", shank, r3.Vec{Z: 2})
			s, _ := strap.NewTwoPoint("calf", o, i)
			Expect(s.Update(0)).To(Succeed())
			Expect(s.PointForces()[1].Force(10)).To(Equal(r3.Vec{Z: 10}))
		})
	})

	Describe("NPoint", func() {
		It("sums segment lengths and cancels directions on a straight run", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			v := add("v", shank, r3.Vec{X: 1})
			i := add("i", rigid.WorldID, r3.Vec{X: 3})
			s, err := strap.NewNPoint("quad", o, []*marker.Marker{v}, i)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Update(0)).To(Succeed())

			Expect(s.Length()).To(Equal(3.0))
			pf := s.PointForces()
			Expect(pf).To(HaveLen(3))
			Expect(pf[0].Direction).To(Equal(r3.Vec{X: 1}))
			Expect(pf[1].Direction).To(beClose(r3.Vec{}))
			Expect(pf[2].Direction).To(Equal(r3.Vec{X: -1}))
			Expect(s.ViaPoints()).To(ConsistOf(v))
		})

		It("leaves the via direction unnormalized at a hairpin", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			v := add("v", shank, r3.Vec{X: 2})
			i := add("i", rigid.WorldID, r3.Vec{X: 1, Y: 1e-9})
			s, err := strap.NewNPoint("loop", o, []*marker.Marker{v}, i)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Update(0)).To(Succeed())
			Expect(r3.Norm(s.PointForces()[1].Direction)).To(BeNumerically("~", 2, 1e-8))
		})

		It("names the degenerate segment", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			v := add("v", shank, r3.Vec{X: 1})
			w := add("w", rigid.WorldID, r3.Vec{X: 1})
			i := add("i", rigid.WorldID, r3.Vec{X: 3})
			s, err := strap.NewNPoint("quad", o, []*marker.Marker{v, w}, i)
			Expect(err).NotTo(HaveOccurred())
			err = s.Update(0)
			Expect(err).To(MatchError(strap.ErrDegenerateSegment))
			Expect(err.Error()).To(ContainSubstring("segment 1 (v to w)"))
		})

		It("refuses a missing marker", func() {
			o := add("o", rigid.WorldID, r3.Vec{})
			_, err := strap.NewNPoint("quad", o, nil, nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("FromAttributes", func() {
		BeforeEach(func() {
			add("o", rigid.WorldID, r3.Vec{})
			add("v", shank, r3.Vec{X: 1, Y: 1})
			add("i", shank, r3.Vec{X: 2})
		})

		It("builds a two point strap", func() {
			s, err := strap.FromAttributes(attr.Set{
				"ID": "s1", "Type": "TwoPoint", "OriginMarkerID": "o", "InsertionMarkerID": "i", "Tension": "25",
			}, lookup)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeAssignableToTypeOf(&strap.TwoPoint{}))
			Expect(s.Length()).To(Equal(2.0))
			Expect(s.Tension()).To(Equal(25.0))
		})

		It("builds an N point strap and serializes it back", func() {
			set := attr.Set{
				"ID": "s2", "Type": "NPoint", "OriginMarkerID": "o",
				"InsertionMarkerID": "i", "ViaPointMarkerIDList": "v",
			}
			s, err := strap.FromAttributes(set, lookup)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Markers()).To(HaveLen(3))
			Expect(strap.Attributes(s)).To(Equal(set))
		})

		It("reports unknown markers", func() {
			_, err := strap.FromAttributes(attr.Set{
				"ID": "s3", "Type": "TwoPoint", "OriginMarkerID": "o", "InsertionMarkerID": "nope",
			}, lookup)
			Expect(err).To(MatchError(attr.ErrUnknown))
			Expect(err.Error()).To(ContainSubstring("nope"))
		})

		It("requires a type", func() {
			_, err := strap.FromAttributes(attr.Set{
				"ID": "s5", "OriginMarkerID": "o", "InsertionMarkerID": "i",
			}, lookup)
			Expect(err).To(MatchError(attr.ErrMissing))
			Expect(err.Error()).To(ContainSubstring(`"Type"`))
		})

		DescribeTable("rejects an empty via point list",
			func(list string) {
				_, err := strap.FromAttributes(attr.Set{
					"ID": "s6", "Type": "NPoint", "OriginMarkerID": "o",
					"InsertionMarkerID": "i", "ViaPointMarkerIDList": list,
				}, lookup)
				Expect(err).To(MatchError(attr.ErrMalformed))
				Expect(err.Error()).To(ContainSubstring("is empty"))
			},
			Entry("empty", ""),
			Entry("whitespace", "   "),
		)

		It("reports an unknown type", func() {
			_, err := strap.FromAttributes(attr.Set{
				"ID": "s4", "Type": "Wrapping", "OriginMarkerID": "o", "InsertionMarkerID": "i",
			}, lookup)
			Expect(err).To(HaveOccurred())
		})
	})
})
