package window

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/registry"
)

var _ = Describe("Exit Evaluators", func() {
	var (
		reg       *registry.Registry
		windows   *registry.Table[Window]
		primaries *registry.Table[PrimaryWindow]
		exits     *event.Queue[AppExit]
		allClosed *ExitOnAllClosed
		primary   *ExitOnPrimaryClosed
	)

	BeforeEach(func() {
		reg = registry.NewRegistry()
		windows = registry.NewTable[Window](reg)
		primaries = registry.NewTable[PrimaryWindow](reg)
		exits = event.NewQueue[AppExit]()
		allClosed = NewExitOnAllClosed(windows, exits)
		primary = NewExitOnPrimaryClosed(windows, primaries, exits)
	})

	spawnWindow := func(isPrimary bool) registry.Entity {
		e := reg.Spawn()
		windows.Set(e, Window{})
		if isPrimary {
			primaries.Set(e, PrimaryWindow{})
		}
		return e
	}

	It("should emit one exit signal when no windows remain", func() {
		allClosed.Tick()

		Expect(exits.Len()).To(Equal(1))
	})

	It("should stay silent while a window remains", func() {
		spawnWindow(false)

		allClosed.Tick()

		Expect(exits.Len()).To(Equal(0))
	})

	It("should emit when the primary window is gone", func() {
		p := spawnWindow(true)
		spawnWindow(false)

		reg.Despawn(p)

		primary.Tick()
		Expect(exits.Len()).To(Equal(1))

		allClosed.Tick()
		Expect(exits.Len()).To(Equal(1),
			"a surviving secondary window must hold back the all-closed policy")
	})

	It("should stay silent while the primary window lives", func() {
		spawnWindow(true)

		primary.Tick()

		Expect(exits.Len()).To(Equal(0))
	})

	It("should treat a primary marker without a Window record as closed",
		func() {
			e := reg.Spawn()
			primaries.Set(e, PrimaryWindow{})

			primary.Tick()

			Expect(exits.Len()).To(Equal(1))
		})

	It("should emit from both policies in the same pass", func() {
		allClosed.Tick()
		primary.Tick()

		Expect(exits.Len()).To(Equal(2))
	})

	It("should invoke the exit hook when all windows are gone", func() {
		hook := &hookCollector{}
		allClosed.AcceptHook(hook)

		allClosed.Tick()

		Expect(hook.positions).To(Equal([]string{"ExitRequested"}))
		Expect(hook.details).To(Equal([]string{"all_closed"}))
	})

	It("should invoke the exit hook when the primary is gone", func() {
		hook := &hookCollector{}
		primary.AcceptHook(hook)
		spawnWindow(false)

		primary.Tick()

		Expect(hook.positions).To(Equal([]string{"ExitRequested"}))
		Expect(hook.details).To(Equal([]string{"primary_closed"}))
	})

	It("should not invoke the exit hook while windows remain", func() {
		hook := &hookCollector{}
		allClosed.AcceptHook(hook)
		primary.AcceptHook(hook)
		spawnWindow(true)

		allClosed.Tick()
		primary.Tick()

		Expect(hook.positions).To(BeEmpty())
	})
})
