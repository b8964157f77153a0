package profiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/luthersystems/roots/lisp"
)

// errWriter wraps an io.Writer and captures the first write error,
// short-circuiting subsequent writes after a failure.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// callgrindProfiler writes a profile in the callgrind format read by
// KCacheGrind and QCacheGrind.  Each function application produces a cost
// block holding its inclusive time and allocation followed by a call block
// for every application it made.
type callgrindProfiler struct {
	profiler
	mu      sync.Mutex
	out     *errWriter
	closer  io.Closer
	start   time.Time
	names   map[string]int
	current *callFrame
}

var _ lisp.Profiler = &callgrindProfiler{}

// callFrame is one function application observed by a callgrindProfiler.
type callFrame struct {
	parent     *callFrame
	calls      []*callFrame
	name       string
	file       string
	line       int
	start      time.Time
	startAlloc uint64
	elapsed    time.Duration
	alloc      uint64
}

func (f *callFrame) finish() {
	f.elapsed = time.Since(f.start)
	if f.elapsed == 0 {
		f.elapsed = 1
	}
	f.alloc = totalAlloc() - f.startAlloc
}

func totalAlloc() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.TotalAlloc
}

// NewCallgrindProfiler returns a profiler that writes a callgrind profile.
// An output must be set with SetFile or SetWriter before it is enabled.
func NewCallgrindProfiler(runtime *lisp.Runtime, opts ...Option) *callgrindProfiler {
	p := &callgrindProfiler{
		profiler: profiler{
			runtime: runtime,
		},
	}
	p.applyConfigs(opts...)
	return p
}

// SetFile creates filename and writes the profile to it.  The file is closed
// by Complete.
func (p *callgrindProfiler) SetFile(filename string) error {
	if p.IsEnabled() {
		return errors.New("profiler already enabled")
	}
	f, err := os.Create(filename) //#nosec G304
	if err != nil {
		return err
	}
	if err := p.SetWriter(f); err != nil {
		_ = f.Close()
		return err
	}
	return nil
}

// SetWriter makes the profiler write its output to w.  If w is an io.Closer
// it is closed by Complete.
func (p *callgrindProfiler) SetWriter(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return errors.New("profiler already enabled")
	}
	p.out = &errWriter{w: w}
	p.closer, _ = w.(io.Closer)
	return nil
}

func (p *callgrindProfiler) Enable() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil {
		return errors.New("no output set in profiler")
	}
	if err := p.profiler.Enable(); err != nil {
		return err
	}
	p.out.printf("version: 1\ncreator: roots (Go %s)\n", runtime.Version())
	p.out.print("cmd: Eval\npart: 1\npositions: line\n\n")
	p.out.print("events: Time_(ns) Memory_(bytes)\n\n")
	if p.out.err != nil {
		p.enabled = false
		return p.out.err
	}
	p.names = make(map[string]int)
	p.start = time.Now()
	p.current = nil
	p.push("ENTRYPOINT", "-", 0)
	p.runtime.Profiler = p
	return nil
}

// Complete writes the block for the entry point and a summary.  Any
// applications still open are closed first.
func (p *callgrindProfiler) Complete() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return errors.New("profiler not enabled")
	}
	for p.current.parent != nil {
		p.pop()
	}
	root := p.current
	root.finish()
	p.writeFrame(root)
	p.out.printf("summary %d %d\n\n", time.Since(p.start).Nanoseconds(), root.alloc)
	p.enabled = false

	err := p.out.err
	if p.closer != nil {
		if cerr := p.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (p *callgrindProfiler) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	name, _ := p.prettyFunName(fun)
	var file string
	var line int
	if loc := getSourceLoc(fun); loc != nil {
		file, line = loc.File, loc.Line
	}
	p.mu.Lock()
	p.push(name, file, line)
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.enabled && p.current.parent != nil {
			p.pop()
		}
	}
}

func (p *callgrindProfiler) push(name, file string, line int) {
	f := &callFrame{
		parent:     p.current,
		name:       name,
		file:       file,
		line:       line,
		start:      time.Now(),
		startAlloc: totalAlloc(),
	}
	if p.current != nil {
		p.current.calls = append(p.current.calls, f)
	}
	p.current = f
}

// pop closes the innermost open application and writes its block.
func (p *callgrindProfiler) pop() {
	f := p.current
	p.current = f.parent
	f.finish()
	p.writeFrame(f)
}

func (p *callgrindProfiler) writeFrame(f *callFrame) {
	if f.file != "" {
		p.out.printf("fl=%s\n", p.ref(f.file))
	}
	p.out.printf("fn=%s\n", p.ref(f.name))
	p.out.printf("%d %d %d\n", f.line, f.elapsed.Nanoseconds(), f.alloc)
	for _, c := range f.calls {
		if c.file != "" {
			p.out.printf("cfl=%s\n", p.ref(c.file))
		}
		p.out.printf("cfn=%s\n", p.ref(c.name))
		p.out.print("calls=1 0 0\n")
		p.out.printf("%d %d %d\n", c.line, c.elapsed.Nanoseconds(), c.alloc)
	}
	p.out.print("\n")
}

// ref returns the compressed name for a file or function.  The first
// reference to a name defines its id.
func (p *callgrindProfiler) ref(name string) string {
	if id, ok := p.names[name]; ok {
		return fmt.Sprintf("(%d)", id)
	}
	id := len(p.names) + 1
	p.names[name] = id
	return fmt.Sprintf("(%d) %s", id, name)
}
