// Package monitoring turns a running window coordinator into a small web
// server for external inspection: live window list, pending releases, pass
// count, system internals, and process resource usage.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/fenestra/registry"
	"github.com/sarchlab/fenestra/schedule"
	"github.com/sarchlab/fenestra/window"
)

// Monitor can turn a window coordinator into a server and allows external
// inspection of the live window set and the deferred-close state.
type Monitor struct {
	scheduler   *schedule.Scheduler
	coordinator *window.CloseCoordinator
	windows     *registry.Table[window.Window]
	primaries   *registry.Table[window.PrimaryWindow]
	portNumber  int
	openBrowser bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the API root in the default browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterScheduler registers the scheduler that runs the coordinator.
func (m *Monitor) RegisterScheduler(s *schedule.Scheduler) {
	m.scheduler = s
}

// RegisterCoordinator registers the close coordinator to be monitored.
func (m *Monitor) RegisterCoordinator(c *window.CloseCoordinator) {
	m.coordinator = c
}

// RegisterWindows registers the window and primary-marker tables.
func (m *Monitor) RegisterWindows(
	windows *registry.Table[window.Window],
	primaries *registry.Table[window.PrimaryWindow],
) {
	m.windows = windows
	m.primaries = primaries
}

// StartServer starts the monitor as a web server, on the configured port if
// one was set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/pass", m.showPass)
	r.HandleFunc("/api/windows", m.listWindows)
	r.HandleFunc("/api/pending", m.listPending)
	r.HandleFunc("/api/systems", m.listSystems)
	r.HandleFunc("/api/system/{name}", m.listSystemDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring windows with %s\n", url)

	if m.openBrowser {
		_ = browser.OpenURL(url + "/api/windows")
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) showPass(w http.ResponseWriter, _ *http.Request) {
	_, err := fmt.Fprintf(w, "%d", m.scheduler.Pass())
	dieOnErr(err)
}

type windowRsp struct {
	Entity  string `json:"entity"`
	Title   string `json:"title"`
	Focused bool   `json:"focused"`
	Primary bool   `json:"primary"`
	Pending bool   `json:"pending"`
}

func (m *Monitor) listWindows(w http.ResponseWriter, _ *http.Request) {
	m.scheduler.Pause()
	defer m.scheduler.Continue()

	pending := make(map[registry.Entity]struct{})
	for _, e := range m.coordinator.PendingWindows() {
		pending[e] = struct{}{}
	}

	rsp := make([]windowRsp, 0)
	m.windows.Each(func(e registry.Entity, win window.Window) {
		_, isPending := pending[e]
		rsp = append(rsp, windowRsp{
			Entity:  e.String(),
			Title:   win.Title,
			Focused: win.Focused,
			Primary: m.primaries.Has(e),
			Pending: isPending,
		})
	})

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listPending(w http.ResponseWriter, _ *http.Request) {
	m.scheduler.Pause()
	defer m.scheduler.Continue()

	names := make([]string, 0)
	for _, e := range m.coordinator.PendingWindows() {
		names = append(names, e.String())
	}

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listSystems(w http.ResponseWriter, _ *http.Request) {
	m.scheduler.Pause()
	defer m.scheduler.Continue()

	names := make([]string, 0)
	for _, sys := range m.scheduler.Systems() {
		names = append(names, sys.Name())
	}

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listSystemDetails(w http.ResponseWriter, r *http.Request) {
	m.scheduler.Pause()
	defer m.scheduler.Continue()

	name := mux.Vars(r)["name"]

	system := m.findSystemOr404(w, name)
	if system == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(system)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findSystemOr404(
	w http.ResponseWriter,
	name string,
) schedule.System {
	var system schedule.System
	for _, s := range m.scheduler.Systems() {
		if s.Name() == name {
			system = s
		}
	}

	if system == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("System not found"))
		dieOnErr(err)
	}

	return system
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
