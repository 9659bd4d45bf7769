// Package trace records window lifecycle transitions into a SQLite
// database, one row per dropped, deferred, or granted close.
package trace

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/joho/godotenv"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/fenestra/hooking"
	"github.com/sarchlab/fenestra/registry"
	"github.com/sarchlab/fenestra/window"
)

// A Row is one recorded lifecycle transition. Entity is empty for
// transitions without a single subject window (exit requests); Detail names
// the policy or carries extra context when the hook provides one.
type Row struct {
	Pass   uint64
	Kind   string
	Entity string
	Detail string
}

// A Recorder is a hook that batches lifecycle transitions and writes them to
// a SQLite database. Attach it to a CloseCoordinator. The pending batch is
// flushed when it fills up and at process exit.
type Recorder struct {
	*sql.DB
	statement *sql.Stmt

	dbName     string
	passSource func() uint64
	rows       []Row
	batchSize  int
}

// NewRecorder creates a Recorder. passSource supplies the current pass
// number, typically Scheduler.Pass. The Init function must be called before
// the recorder is attached.
func NewRecorder(passSource func() uint64) *Recorder {
	r := &Recorder{
		passSource: passSource,
		batchSize:  4096,
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// WithFileName overrides the database file name, without the .sqlite3
// suffix.
func (r *Recorder) WithFileName(name string) *Recorder {
	r.dbName = name
	return r
}

// Init reads the environment configuration and establishes a connection to
// the database. Settings come from the process environment, optionally
// seeded from a .env file: FENESTRA_TRACE_PATH names the database file and
// FENESTRA_TRACE_BATCH sets the batch size.
func (r *Recorder) Init() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	if r.dbName == "" {
		r.dbName = os.Getenv("FENESTRA_TRACE_PATH")
	}
	if r.dbName == "" {
		r.dbName = "fenestra_trace_" + xid.New().String()
	}

	if batch := os.Getenv("FENESTRA_TRACE_BATCH"); batch != "" {
		size, err := strconv.Atoi(batch)
		if err != nil {
			panic(fmt.Errorf("FENESTRA_TRACE_BATCH is not a number: %w", err))
		}
		r.batchSize = size
	}

	r.createDatabase()
	r.createTable()
	r.prepareStatement()
}

func (r *Recorder) createDatabase() {
	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

func (r *Recorder) createTable() {
	r.mustExecute(`
		CREATE TABLE lifecycle (
			pass   INTEGER,
			kind   TEXT,
			entity TEXT,
			detail TEXT
		);
	`)
}

func (r *Recorder) prepareStatement() {
	stmt, err := r.Prepare(
		"INSERT INTO lifecycle (pass, kind, entity, detail) " +
			"VALUES (?, ?, ?, ?)")
	if err != nil {
		panic(err)
	}

	r.statement = stmt
}

func (r *Recorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		panic(fmt.Errorf("%w: %s", err, query))
	}

	return res
}

// Func records one row per recognized hook invocation. Scheduler positions
// and anything else it does not know are ignored, so the recorder can be
// attached broadly.
func (r *Recorder) Func(ctx hooking.HookCtx) {
	var kind string

	switch ctx.Pos {
	case window.HookPosCloseDropped:
		kind = "close_dropped"
	case window.HookPosCloseDeferred:
		kind = "close_deferred"
	case window.HookPosWindowReleased:
		kind = "window_released"
	case window.HookPosExitRequested:
		kind = "exit_requested"
	default:
		return
	}

	entity := ""
	if e, ok := ctx.Item.(registry.Entity); ok {
		entity = e.String()
	}

	detail := ""
	if d, ok := ctx.Detail.(string); ok {
		detail = d
	}

	r.record(Row{
		Pass:   r.passSource(),
		Kind:   kind,
		Entity: entity,
		Detail: detail,
	})
}

func (r *Recorder) record(row Row) {
	r.rows = append(r.rows, row)

	if len(r.rows) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all buffered rows to the database.
func (r *Recorder) Flush() {
	if len(r.rows) == 0 {
		return
	}

	tx, err := r.Begin()
	if err != nil {
		panic(err)
	}

	for _, row := range r.rows {
		_, err := tx.Stmt(r.statement).
			Exec(row.Pass, row.Kind, row.Entity, row.Detail)
		if err != nil {
			panic(err)
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	r.rows = r.rows[:0]
}
