package solver

import (
	"math/bits"
	"sync"
)

// Pooled literal-slice allocator for clause bodies (DESIGN NOTES: "Arena
// for learnt clauses"). Grounded on the teacher's internal/sat/
// clauses_alloc.go, kept as a single always-on pool rather than behind the
// teacher's "clausepool" build tag: the teacher used the tag only to let
// benchmarks compare pooled vs. plain allocation, but a production-sized
// learnt database (spec's size budget assumes tens of thousands of learnt
// clauses churning through ReduceDB) always wants the pooled path, so the
// choice is no longer optional here.

const nLitPools = 4       // pool i holds capacities in [2^(i+1), 2^(i+2)-1]
const lastPoolCapa = 1 << nLitPools

var litPools [nLitPools]sync.Pool

func init() {
	for i := 0; i < nLitPools; i++ {
		capa := 1 << (i + 1)
		litPools[i].New = func() any {
			s := make([]literal, 0, capa)
			return &s
		}
	}
}

func litPoolID(capa int) int {
	if capa >= lastPoolCapa {
		return nLitPools - 1
	}
	id := bits.Len(uint(capa)) - 1
	if capa < (1 << id) {
		id--
	}
	if id < 0 {
		id = 0
	}
	return id
}

func allocLitSlice(capa int) *[]literal {
	ref := litPools[litPoolID(capa)].Get().(*[]literal)
	if capa < lastPoolCapa {
		return ref
	}
	if cap(*ref) < capa {
		s := make([]literal, 0, capa)
		ref = &s
	}
	return ref
}

func freeLitSlice(s *[]literal) {
	*s = (*s)[:0]
	litPools[litPoolID(cap(*s))].Put(s)
}
