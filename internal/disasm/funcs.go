package disasm

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/ianlancetaylor/demangle"
)

// funcHdrRe matches a function header such as "00000000800090b0 <userret>:".
var funcHdrRe = regexp.MustCompile(`^\s*([0-9A-Fa-f]+)\s+<([^>]+)>:\s*$`)

// Func is a function span recovered from the listing's header lines.
// The last function in address order is open ended.
type Func struct {
	Name  string
	Start uint64
	End   uint64 // exclusive, unused when Open
	Open  bool
}

// Contains reports whether addr falls in [Start, End).
func (f Func) Contains(addr uint64) bool {
	if addr < f.Start {
		return false
	}
	return f.Open || addr < f.End
}

// Display returns the demangled name, or Name if it is not mangled.
func (f Func) Display() string {
	return demangle.Filter(f.Name, demangle.NoClones)
}

// FuncIndex maps addresses to the function that contains them.
type FuncIndex struct {
	funcs []Func
}

// IndexFuncs collects the function headers of a listing. Each function runs
// up to the start of the next one.
func IndexFuncs(lines Listing) *FuncIndex {
	var funcs []Func
	for _, ln := range lines {
		m := funcHdrRe.FindStringSubmatch(ln.Raw)
		if m == nil {
			continue
		}
		start, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			continue
		}
		funcs = append(funcs, Func{Name: m[2], Start: start})
	}

	sort.SliceStable(funcs, func(i, j int) bool {
		return funcs[i].Start < funcs[j].Start
	})
	for i := range funcs {
		if i+1 == len(funcs) {
			funcs[i].Open = true
			break
		}
		end := funcs[i+1].Start
		if end <= funcs[i].Start {
			// duplicate start address
			end = funcs[i].Start + 1
		}
		funcs[i].End = end
	}
	return &FuncIndex{funcs: funcs}
}

// Len returns the number of indexed functions.
func (ix *FuncIndex) Len() int { return len(ix.funcs) }

// Funcs returns the indexed functions in address order.
func (ix *FuncIndex) Funcs() []Func { return ix.funcs }

// Lookup returns the function containing addr.
func (ix *FuncIndex) Lookup(addr uint64) (Func, bool) {
	// first function starting after addr
	i := sort.Search(len(ix.funcs), func(i int) bool {
		return ix.funcs[i].Start > addr
	}) - 1
	if i < 0 {
		return Func{}, false
	}
	f := ix.funcs[i]
	if !f.Contains(addr) {
		return Func{}, false
	}
	return f, true
}
