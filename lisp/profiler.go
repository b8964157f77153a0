package lisp

// Interface for a profiler
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session and output summary lines
	Complete() error
	// Marks the start of a function application.  The application is
	// already on top of the runtime call stack.  The returned function marks
	// its end.
	Start(function *LVal) func()
}
