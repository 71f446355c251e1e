package filter

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const sampleRate = 1000.0

func feed(f Filter, n int, signal func(i int) float64) {
	for i := 0; i < n; i++ {
		f.AddSample(signal(i))
	}
}

var _ = Describe("low-pass filters", func() {
	DescribeTable("settle on a constant input",
		func(kind Kind, samples int) {
			f, err := New(kind, 20, 25, sampleRate)
			Expect(err).NotTo(HaveOccurred())

			feed(f, samples, func(int) float64 { return 3.5 })
			Expect(f.Output()).To(BeNumerically("~", 3.5, 1e-6))

			f.Reset()
			Expect(f.Output()).To(BeZero())
		},
		Entry("no low pass", None, 1),
		Entry("moving average", MovingAverageKind, 20),
		Entry("butterworth", ButterworthKind, 2000),
	)

	Describe("the Butterworth filter", func() {
		var b *Butterworth

		BeforeEach(func() {
			var err error
			b, err = NewButterworth(10, sampleRate)
			Expect(err).NotTo(HaveOccurred())
		})

		It("attenuates a tone a decade above cutoff", func() {
			peak := 0.0
			for i := 0; i < 2000; i++ {
				b.AddSample(math.Sin(2 * math.Pi * 100 * float64(i) / sampleRate))
				if i > 1000 {
					peak = math.Max(peak, math.Abs(b.Output()))
				}
			}
			Expect(peak).To(BeNumerically("<", 0.05))
		})

		It("passes a tone well below cutoff", func() {
			peak := 0.0
			for i := 0; i < 4000; i++ {
				b.AddSample(math.Sin(2 * math.Pi * 1 * float64(i) / sampleRate))
				if i > 2000 {
					peak = math.Max(peak, math.Abs(b.Output()))
				}
			}
			Expect(peak).To(BeNumerically("~", 1, 0.02))
		})

		It("shares coefficients between instances", func() {
			other := NewButterworthFrom(b.Coefficients())
			feed(b, 50, func(i int) float64 { return float64(i % 7) })
			feed(other, 50, func(i int) float64 { return float64(i % 7) })
			Expect(other.Output()).To(Equal(b.Output()))
		})
	})

	Context("with invalid parameters", func() {
		It("rejects an empty moving-average window", func() {
			_, err := New(MovingAverageKind, 0, 0, sampleRate)
			Expect(err).To(MatchError(ErrWindow))
		})

		It("rejects a cutoff at or above Nyquist", func() {
			_, err := New(ButterworthKind, 1, sampleRate/2, sampleRate)
			Expect(err).To(MatchError(ErrCutoff))
		})

		It("rejects an unknown low pass name", func() {
			_, err := ParseKind("Kalman")
			Expect(err).To(MatchError(ContainSubstring("unknown low pass type")))
		})
	})

	It("parses kind names without regard to case", func() {
		k, err := ParseKind("butterworth2ndorderlowpass")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(ButterworthKind))
		Expect(k.String()).To(Equal("Butterworth2ndOrderLowPass"))
	})
})
