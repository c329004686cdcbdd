package compliant

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/multibody"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// hertzHarness wires a HertzCircular generator to a two-surface tracker
// so a single contact can be evaluated directly.
type hertzHarness struct {
	sub *Subsystem
	gen *HertzCircular
	tr  *contact.FixedTracker
	s   *state.State
}

func newHertzHarness(mat1, mat2 contact.Material) *hertzHarness {
	matter := multibody.NewSystem()
	matter.AddBody(multibody.Body{Name: "a", Static: true})
	matter.AddBody(multibody.Body{Name: "b", Mass: 1, Inertia: mgl64.Ident3()})

	tr := &contact.FixedTracker{
		Surfaces: []contact.Surface{
			{Body: 0, Placement: spatial.Identity(), Material: mat1},
			{Body: 1, Placement: spatial.Identity(), Material: mat2},
		},
	}

	sub := New(matter, tr)
	gen := NewHertzCircular()
	Expect(sub.AdoptGenerator(gen)).To(Succeed())

	s := state.New(matter.NumBodies())
	sub.RealizeTopology(s)
	s.Advance(state.StageVelocity)

	return &hertzHarness{sub: sub, gen: gen, tr: tr, s: s}
}

func pointContact(depth, radius float64) *contact.Contact {
	return &contact.Contact{
		ID: 1, Type: contact.TypeCircularPoint,
		Surface1: 0, Surface2: 1,
		Depth:  depth,
		Normal: mgl64.Vec3{0, 0, 1},
		Origin: mgl64.Vec3{0, 0, -depth / 2},
		Radius: radius,
	}
}

var _ = Describe("HertzCircular", func() {
	var still spatial.Velocity

	Context("with stiffness 100 and 400 and no dissipation", func() {
		// The canonical closed-form case: s1 = 400/500 = 0.8, combined
		// k = 100*0.8 = 80.
		var h *hertzHarness

		BeforeEach(func() {
			// Materials are constructed from the raw modulus; choose
			// moduli whose 2/3 powers are exactly 100 and 400.
			mat1 := contact.MustMaterial(1000, 0, 0, 0, 0) // 1000^(2/3) = 100
			mat2 := contact.MustMaterial(8000, 0, 0, 0, 0) // 8000^(2/3) = 400
			h = newHertzHarness(mat1, mat2)
		})

		It("computes the Hertz force and energy in closed form", func() {
			const (
				x = 0.01
				R = 1.0
				k = 80.0
			)
			cf, ok, err := h.gen.Force(h.s, pointContact(x, R), still, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			fH := (4.0 / 3.0) * k * x * math.Sqrt(R*k*x)
			Expect(cf.ForceOnSurface2.F.Z()).To(BeNumerically("~", fH, 1e-9))
			Expect(cf.ForceOnSurface2.F.X()).To(BeZero())
			Expect(cf.ForceOnSurface2.F.Y()).To(BeZero())
			Expect(cf.PotentialEnergy).To(BeNumerically("~", (2.0/5.0)*fH*x, 1e-12))
			Expect(cf.PowerLoss).To(BeZero())
		})

		It("offsets the contact point toward the stiffer surface", func() {
			const x = 0.01
			cf, ok, err := h.gen.Force(h.s, pointContact(x, 1), still, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			// s1 = 0.8: the point moves by x*(0.5-0.8) = -0.003 along
			// the normal from the midpoint at -x/2.
			Expect(cf.CenterOfPressure.Z()).To(BeNumerically("~", -x/2+x*(0.5-0.8), 1e-15))
		})

		It("is symmetric under swapping the materials", func() {
			swapped := newHertzHarness(
				contact.MustMaterial(8000, 0, 0, 0, 0),
				contact.MustMaterial(1000, 0, 0, 0, 0),
			)
			a, _, err := h.gen.Force(h.s, pointContact(0.01, 1), still, still)
			Expect(err).NotTo(HaveOccurred())
			b, _, err := swapped.gen.Force(swapped.s, pointContact(0.01, 1), still, still)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.ForceOnSurface2.F.Len()).To(BeNumerically("~", b.ForceOnSurface2.F.Len(), 1e-9))
			Expect(a.PotentialEnergy).To(BeNumerically("~", b.PotentialEnergy, 1e-12))
		})
	})

	Context("degenerate geometry", func() {
		var h *hertzHarness

		BeforeEach(func() {
			mat := contact.MustMaterial(1e6, 0.2, 0.5, 0.3, 0.01)
			h = newHertzHarness(mat, mat)
		})

		It("reports no force for zero depth", func() {
			_, ok, err := h.gen.Force(h.s, pointContact(0, 1), still, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("reports no force for negative depth", func() {
			_, ok, err := h.gen.Force(h.s, pointContact(-0.01, 1), still, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("omits depthless contacts from the force cache", func() {
			h.tr.Contacts = []contact.Contact{*pointContact(-0.01, 1)}
			forces, err := h.sub.ContactForces(h.s)
			Expect(err).NotTo(HaveOccurred())
			Expect(forces).To(BeEmpty())
		})
	})

	Context("yanking", func() {
		It("clamps to a valid zero-force record", func() {
			// Heavy dissipation and a fast separation: fH + fHC < 0.
			mat := contact.MustMaterial(1e6, 10, 0.5, 0.3, 0)
			h := newHertzHarness(mat, mat)

			// Surface 2 fleeing along the normal: penetration rate is
			// negative and large.
			v2 := spatial.Velocity{V: mgl64.Vec3{0, 0, 5}}
			cf, ok, err := h.gen.Force(h.s, pointContact(0.01, 1), still, v2)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue(), "geometric contact persists")

			Expect(cf.ForceOnSurface2.F.Len()).To(BeZero())
			Expect(cf.ForceOnSurface2.T.Len()).To(BeZero())
			Expect(cf.PotentialEnergy).To(BeZero())
			Expect(cf.PowerLoss).To(BeZero())
		})
	})

	Context("friction", func() {
		var h *hertzHarness

		BeforeEach(func() {
			mat := contact.MustMaterial(1e6, 0, 0.8, 0.6, 0)
			h = newHertzHarness(mat, mat)
		})

		It("produces no tangential force without slip", func() {
			cf, ok, err := h.gen.Force(h.s, pointContact(0.01, 1), still, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(cf.ForceOnSurface2.F.X()).To(BeZero())
			Expect(cf.ForceOnSurface2.F.Y()).To(BeZero())
			Expect(cf.PowerLoss).To(BeZero())
		})

		It("opposes slip and dissipates power", func() {
			// Surface 1 sliding in +x under surface 2: friction drags
			// surface 2 along +x and heats the contact.
			v1 := spatial.Velocity{V: mgl64.Vec3{0.5, 0, 0}}
			cf, ok, err := h.gen.Force(h.s, pointContact(0.01, 1), v1, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			Expect(cf.ForceOnSurface2.F.X()).To(BeNumerically(">", 0))
			Expect(cf.PowerLoss).To(BeNumerically(">", 0))
		})

		It("scales friction with the combined coefficient of the pair", func() {
			frictionless := newHertzHarness(
				contact.MustMaterial(1e6, 0, 0.8, 0.6, 0),
				contact.MustMaterial(1e6, 0, 0, 0, 0), // combined coefficient 0
			)
			v1 := spatial.Velocity{V: mgl64.Vec3{0.5, 0, 0}}
			cf, ok, err := frictionless.gen.Force(frictionless.s, pointContact(0.01, 1), v1, still)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(cf.ForceOnSurface2.F.X()).To(BeZero())
			Expect(cf.PowerLoss).To(BeZero())
		})
	})

	Context("Hunt-Crossley dissipation", func() {
		It("adds force while approaching and sheds it while separating", func() {
			mat := contact.MustMaterial(1e6, 0.05, 0, 0, 0)
			h := newHertzHarness(mat, mat)

			rest, _, err := h.gen.Force(h.s, pointContact(0.01, 1), still, still)
			Expect(err).NotTo(HaveOccurred())

			// Surface 2 sinking toward surface 1.
			approaching, _, err := h.gen.Force(h.s, pointContact(0.01, 1),
				still, spatial.Velocity{V: mgl64.Vec3{0, 0, -0.1}})
			Expect(err).NotTo(HaveOccurred())

			separating, _, err := h.gen.Force(h.s, pointContact(0.01, 1),
				still, spatial.Velocity{V: mgl64.Vec3{0, 0, 0.1}})
			Expect(err).NotTo(HaveOccurred())

			Expect(approaching.ForceOnSurface2.F.Z()).To(BeNumerically(">", rest.ForceOnSurface2.F.Z()))
			Expect(separating.ForceOnSurface2.F.Z()).To(BeNumerically("<", rest.ForceOnSurface2.F.Z()))
			Expect(approaching.PowerLoss).To(BeNumerically(">", 0))
			Expect(separating.PowerLoss).To(BeNumerically(">", 0))
		})
	})
})
