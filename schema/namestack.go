package schema

import (
	"fmt"
	"sync"
)

// The name-stack registry is a construction-time-only device: every
// descriptor constructor pushes its own name before building itself and
// pops it when done, so a nested descriptor's constructor can ask
// currentPath() for its fully-qualified dotted key. One package-level
// mutex guards the shared stack; each push, pop, path read and child
// registration takes it once.
type ctorFrame struct {
	name     string
	children []Parameter
}

var (
	stackMu sync.Mutex
	stack   []*ctorFrame
)

func beginCtor(name string) {
	stackMu.Lock()
	defer stackMu.Unlock()
	stack = append(stack, &ctorFrame{name: name})
}

// endCtor pops the frame most recently pushed under name and returns the
// children that registered themselves into it while it was on top. It
// panics on a misordered push/pop pair: that can only happen from a bug in
// this package's own constructors, never from user input.
func endCtor(name string) []Parameter {
	stackMu.Lock()
	defer stackMu.Unlock()
	n := len(stack)
	if n == 0 || stack[n-1].name != name {
		panic(fmt.Sprintf("fhicl/schema: name-stack misordered: expected to pop %q", name))
	}
	f := stack[n-1]
	stack = stack[:n-1]
	return f.children
}

// currentPath joins the stack into the dotted path of the descriptor
// currently under construction (the one most recently pushed).
func currentPath() string {
	stackMu.Lock()
	defer stackMu.Unlock()
	ref := RootKeyRef()
	for _, f := range stack {
		// The root table conventionally has an empty name; skip it so its
		// children's keys read "n" rather than ".n".
		if f.name == "" {
			continue
		}
		ref = ref.Field(f.name)
	}
	return ref.Path()
}

// registerChild records p as a child of whatever frame is now on top, i.e.
// the frame of p's parent (p's own frame was just popped by endCtor). At
// the root, the stack is empty and registration is a no-op: a root
// descriptor has no parent to register into.
func registerChild(p Parameter) {
	stackMu.Lock()
	defer stackMu.Unlock()
	if len(stack) == 0 {
		return
	}
	top := stack[len(stack)-1]
	top.children = append(top.children, p)
}
