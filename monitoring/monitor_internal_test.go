package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fenestra/event"
	"github.com/sarchlab/fenestra/registry"
	"github.com/sarchlab/fenestra/schedule"
	"github.com/sarchlab/fenestra/window"
)

var _ = Describe("Monitor", func() {
	var (
		m         *Monitor
		reg       *registry.Registry
		windows   *registry.Table[window.Window]
		primaries *registry.Table[window.PrimaryWindow]
		tokens    *registry.Table[window.SurfaceToken]
		commands  *registry.CommandBuffer
		requests  *event.Queue[window.CloseRequested]
		scheduler *schedule.Scheduler
	)

	BeforeEach(func() {
		reg = registry.NewRegistry()
		windows = registry.NewTable[window.Window](reg)
		primaries = registry.NewTable[window.PrimaryWindow](reg)
		tokens = registry.NewTable[window.SurfaceToken](reg)
		commands = registry.NewCommandBuffer(reg)
		requests = event.NewQueue[window.CloseRequested]()
		scheduler = schedule.NewScheduler(commands)

		coordinator := window.NewCloseCoordinator(tokens, requests, commands)
		scheduler.AddSystem(coordinator)

		m = NewMonitor()
		m.RegisterScheduler(scheduler)
		m.RegisterCoordinator(coordinator)
		m.RegisterWindows(windows, primaries)
	})

	It("should list windows with their markers", func() {
		e := reg.Spawn()
		windows.Set(e, window.Window{Title: "main", Focused: true})
		primaries.Set(e, window.PrimaryWindow{})

		rec := httptest.NewRecorder()
		m.listWindows(rec, nil)

		var rsp []windowRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Title).To(Equal("main"))
		Expect(rsp[0].Focused).To(BeTrue())
		Expect(rsp[0].Primary).To(BeTrue())
		Expect(rsp[0].Pending).To(BeFalse())
	})

	It("should report the pass count", func() {
		scheduler.Tick()
		scheduler.Tick()

		rec := httptest.NewRecorder()
		m.showPass(rec, nil)

		Expect(rec.Body.String()).To(Equal("2"))
	})

	It("should list system names", func() {
		rec := httptest.NewRecorder()
		m.listSystems(rec, nil)

		var names []string
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"CloseCoordinator"}))
	})

	It("should answer 404 for an unknown system", func() {
		rec := httptest.NewRecorder()

		sys := m.findSystemOr404(rec, "NoSuchSystem")

		Expect(sys).To(BeNil())
		Expect(rec.Code).To(Equal(404))
	})
})
