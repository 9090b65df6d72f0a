package view

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/randwalk/internal/walk"
)

type failingSurface struct {
	Recorder
	err error
}

func (f *failingSurface) Render(p Payload) error {
	_ = f.Recorder.Render(p)
	return f.err
}

func drain(s *Session, id RunID) int {
	steps := 0
	for {
		ok, err := s.Tick(id)
		Expect(err).NotTo(HaveOccurred())
		if !ok {
			return steps
		}
		steps++
	}
}

var _ = Describe("Session", func() {
	var (
		rec  *Recorder
		sess *Session
	)

	BeforeEach(func() {
		rec = NewRecorder(0)
		sess = NewSession(rec, Trajectory)
	})

	It("starts idle at the origin", func() {
		Expect(sess.Status()).To(Equal(Idle))
		Expect(sess.Step()).To(Equal(0))
		Expect(sess.State().Points).To(Equal([]walk.Point{walk.Origin}))
		Expect(sess.Status().String()).To(Equal("waiting for start"))
	})

	It("rejects ticks before any run", func() {
		_, err := sess.Tick(1)
		Expect(errors.Is(err, ErrNoRun)).To(BeTrue())
	})

	Context("a valid run", func() {
		var id RunID

		BeforeEach(func() {
			var err error
			id, err = sess.Start(walk.Params{Steps: 100, MaxStepLength: 1.0, Seed: 5})
			Expect(err).NotTo(HaveOccurred())
		})

		It("renders the origin frame on start", func() {
			Expect(sess.Status()).To(Equal(Running))
			Expect(rec.Frames).To(HaveLen(1))
			Expect(rec.Frames[0].Points).To(Equal([]walk.Point{walk.Origin}))
		})

		It("renders once per step and completes", func() {
			Expect(drain(sess, id)).To(Equal(100))
			Expect(sess.Status()).To(Equal(Completed))
			Expect(rec.Frames).To(HaveLen(101))

			st := sess.State()
			Expect(st.Points).To(HaveLen(101))
			Expect(st.Points[0]).To(Equal(walk.Origin))
			for _, l := range st.StepLengths() {
				Expect(l).To(BeNumerically(">=", 0))
				Expect(l).To(BeNumerically("<=", 1.0+1e-12))
			}
		})

		It("keeps the step index in line with the point count", func() {
			for i := 1; i <= 10; i++ {
				ok, err := sess.Tick(id)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
				Expect(sess.Step()).To(Equal(i))
				Expect(sess.State().Points).To(HaveLen(i + 1))
				last, _ := rec.Last()
				Expect(last.Step).To(Equal(i))
			}
			Expect(sess.Remaining()).To(Equal(90))
		})

		It("re-renders on mode switch without advancing", func() {
			sess.Tick(id)
			sess.Tick(id)
			frames := len(rec.Frames)

			Expect(sess.SetMode(Distribution)).To(Succeed())
			Expect(rec.Frames).To(HaveLen(frames + 1))
			Expect(sess.Step()).To(Equal(2))

			last, _ := rec.Last()
			Expect(last.Mode).To(Equal(Distribution))
			Expect(last.Radii).To(HaveLen(3))
			Expect(last.Bins).To(Equal(DefaultBins))
		})

		It("ignores ticks from a run that was replaced", func() {
			sess.Tick(id)
			newID, err := sess.Start(walk.Params{Steps: 3, MaxStepLength: 1.0, Seed: 6})
			Expect(err).NotTo(HaveOccurred())
			Expect(newID).NotTo(Equal(id))
			Expect(rec.Stops).To(Equal(1))
			Expect(sess.Step()).To(Equal(0))

			ok, err := sess.Tick(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(sess.Step()).To(Equal(0))

			Expect(drain(sess, newID)).To(Equal(3))
			Expect(sess.State().Points).To(HaveLen(4))
		})

		It("stops without appending further steps", func() {
			sess.Tick(id)
			sess.Stop()
			Expect(sess.Status()).To(Equal(Idle))
			Expect(rec.Stops).To(Equal(1))

			ok, err := sess.Tick(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(sess.Step()).To(Equal(1))
		})

		It("resets idempotently", func() {
			sess.Tick(id)
			Expect(sess.Reset()).To(Succeed())
			once := sess.State()
			Expect(sess.Reset()).To(Succeed())

			Expect(sess.State()).To(Equal(once))
			Expect(once.Points).To(Equal([]walk.Point{walk.Origin}))
			Expect(sess.Step()).To(Equal(0))
			Expect(sess.Status()).To(Equal(Idle))
			Expect(rec.Clears).To(Equal(2))
			Expect(rec.Stops).To(Equal(1))
		})

		It("does not render on mode switch after reset", func() {
			Expect(sess.Reset()).To(Succeed())
			Expect(sess.SetMode(Distribution)).To(Succeed())
			Expect(rec.Frames).To(BeEmpty())
			Expect(sess.Mode()).To(Equal(Distribution))
		})
	})

	It("leaves state unchanged on invalid input", func() {
		id, err := sess.Start(walk.Params{Steps: 2, MaxStepLength: 1.0, Seed: 8})
		Expect(err).NotTo(HaveOccurred())
		drain(sess, id)
		before := sess.State()
		frames := len(rec.Frames)

		_, err = sess.Start(walk.Params{Steps: -1, MaxStepLength: 1.0})
		Expect(errors.Is(err, walk.ErrInvalidStepCount)).To(BeTrue())

		_, err = sess.Start(walk.Params{Steps: 4, MaxStepLength: -2})
		Expect(errors.Is(err, walk.ErrInvalidStepLength)).To(BeTrue())

		Expect(sess.State()).To(Equal(before))
		Expect(sess.Status()).To(Equal(Completed))
		Expect(rec.Frames).To(HaveLen(frames))
	})

	It("completes immediately with zero steps", func() {
		id, err := sess.Start(walk.Params{Steps: 0, MaxStepLength: 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(sess.Status()).To(Equal(Completed))

		ok, err := sess.Tick(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		Expect(sess.SetMode(Distribution)).To(Succeed())
		last, _ := rec.Last()
		Expect(last.Radii).To(Equal([]float64{0.0}))
	})

	It("keeps every point at the origin with zero step length", func() {
		sess.SetMode(Distribution)
		id, err := sess.Start(walk.Params{Steps: 5, MaxStepLength: 0.0, Seed: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(drain(sess, id)).To(Equal(5))

		for _, p := range sess.State().Points {
			Expect(p).To(Equal(walk.Origin))
		}
		last, _ := rec.Last()
		Expect(last.Radii).To(Equal([]float64{0, 0, 0, 0, 0, 0}))
	})

	It("propagates surface errors", func() {
		boom := errors.New("boom")
		fs := &failingSurface{err: boom}
		s := NewSession(fs, Trajectory)

		id, err := s.Start(walk.Params{Steps: 2, MaxStepLength: 1})
		Expect(err).To(MatchError(boom))
		_, err = s.Tick(id)
		Expect(err).To(MatchError(boom))
	})
})

var _ = Describe("Drive", func() {
	It("runs a walk to completion", func() {
		rec := NewRecorder(1)
		sess := NewSession(rec, Distribution)
		id, err := sess.Start(walk.Params{Steps: 50, MaxStepLength: 1, Seed: 1})
		Expect(err).NotTo(HaveOccurred())

		Expect(Drive(context.Background(), sess, id, 0)).To(Succeed())
		Expect(sess.Status()).To(Equal(Completed))
		Expect(rec.Frames).To(HaveLen(1))
		last, _ := rec.Last()
		Expect(last.Radii).To(HaveLen(51))
	})

	It("stops the run when the context is canceled", func() {
		rec := NewRecorder(0)
		sess := NewSession(rec, Trajectory)
		id, err := sess.Start(walk.Params{Steps: 1000, MaxStepLength: 1, Seed: 1})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = Drive(ctx, sess, id, time.Millisecond)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(sess.Status()).To(Equal(Idle))
		Expect(rec.Stops).To(Equal(1))
		Expect(sess.Step()).To(BeNumerically("<", 1000))
	})
})
