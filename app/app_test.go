package app

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fenestra/window"
)

// stubToken is a surface token whose safety can be toggled from the test.
type stubToken struct {
	safe bool
}

func (t *stubToken) SafeToCloseWindow() bool {
	return t.safe
}

// onePressKeyboard reports escape as just pressed on its first query of
// each pass it is armed for.
type onePressKeyboard struct {
	pressed bool
}

func (k *onePressKeyboard) JustPressed(key window.Key) bool {
	return k.pressed && key == window.KeyEscape
}

var _ = Describe("App", func() {
	It("should close a window once the renderer releases its surface", func() {
		a := MakeBuilder().Build()
		a.SpawnWindow("main", true, true)
		doc := a.SpawnWindow("doc", false, false)
		token := &stubToken{safe: false}
		a.Tokens.Set(doc, token)

		a.RequestClose(doc)

		Expect(a.Tick()).To(BeTrue())
		Expect(a.Registry.Alive(doc)).To(BeTrue())
		Expect(a.Coordinator.NumPending()).To(Equal(1))

		Expect(a.Tick()).To(BeTrue())
		Expect(a.Registry.Alive(doc)).To(BeTrue())

		token.safe = true
		Expect(a.Tick()).To(BeTrue())

		Expect(a.Registry.Alive(doc)).To(BeFalse())
		Expect(a.Coordinator.NumPending()).To(Equal(0))
		Expect(a.ExitRequested()).To(BeFalse())
	})

	It("should close through the default token on the provisioning pass",
		func() {
			a := MakeBuilder().Build()
			main := a.SpawnWindow("main", true, true)

			a.RequestClose(main)

			// The provisioner's token lands before the coordinator runs, so
			// the request is honored on the same pass and the exit policies
			// both fire.
			Expect(a.Tick()).To(BeFalse())
			Expect(a.Registry.Alive(main)).To(BeFalse())
			Expect(a.ExitRequested()).To(BeTrue())
		})

	It("should request exit when the primary window closes", func() {
		a := MakeBuilder().Build()
		main := a.SpawnWindow("main", true, true)
		a.SpawnWindow("doc", false, false)

		Expect(a.Tick()).To(BeTrue())

		a.RequestClose(main)
		Expect(a.Tick()).To(BeFalse())

		Expect(a.Registry.Alive(main)).To(BeFalse())
		Expect(a.Windows.Len()).To(Equal(1))
		Expect(a.ExitRequested()).To(BeTrue())
	})

	It("should exit through the escape key", func() {
		keyboard := &onePressKeyboard{pressed: true}
		a := MakeBuilder().WithKeyboard(keyboard).Build()
		main := a.SpawnWindow("main", true, true)

		Expect(a.Tick()).To(BeFalse())

		Expect(a.Registry.Alive(main)).To(BeFalse())
		Expect(a.ExitRequested()).To(BeTrue())
	})

	It("should drop a close request raced against despawn", func() {
		a := MakeBuilder().Build()
		a.SpawnWindow("main", true, true)
		doc := a.SpawnWindow("doc", false, false)

		Expect(a.Tick()).To(BeTrue())

		a.Registry.Despawn(doc)
		a.RequestClose(doc)

		Expect(a.Tick()).To(BeTrue())
		Expect(a.Coordinator.NumPending()).To(Equal(0))
	})

	It("should stop at the pass budget when no exit arrives", func() {
		a := MakeBuilder().Build()
		a.SpawnWindow("main", true, true)

		a.Run(10)

		Expect(a.Scheduler.Pass()).To(Equal(uint64(10)))
		Expect(a.ExitRequested()).To(BeFalse())
	})
})
