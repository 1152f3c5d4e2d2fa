// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vo

import (
	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
)

// ResultObjs is the query's matched-object side table: res_vo.ObjNode
// variants reference into it by id rather than embedding the object data
// twice (spec.md section 6, "res_objs: {id -> Object}").
type ResultObjs struct {
	byID map[chainmodel.ID]chainmodel.Object
}

// NewResultObjs returns an empty object table.
func NewResultObjs() ResultObjs {
	return ResultObjs{byID: make(map[chainmodel.ID]chainmodel.Object)}
}

// Add records a matched object.
func (r *ResultObjs) Add(obj chainmodel.Object) {
	r.byID[obj.ID] = obj
}

// Get looks up a matched object by id.
func (r ResultObjs) Get(id chainmodel.ID) (chainmodel.Object, bool) {
	obj, ok := r.byID[id]
	return obj, ok
}

// Len returns the number of distinct matched objects.
func (r ResultObjs) Len() int { return len(r.byID) }

// Range calls f for every matched object. Iteration order is unspecified.
func (r ResultObjs) Range(f func(id chainmodel.ID, obj chainmodel.Object)) {
	for id, obj := range r.byID {
		f(id, obj)
	}
}

// Replace overwrites the stored object for obj.ID, matching Add. Separate
// name so a caller's intent (updating a known entry vs. recording a new
// match) is clear at the call site.
func (r *ResultObjs) Replace(obj chainmodel.Object) {
	r.byID[obj.ID] = obj
}

// AccProofIdx addresses one entry of ResultVOAcc's side tables: sub_set_index
// names the distinct query_exp_set, entry_index names one object-side
// accumulator/proof pair for it (spec.md section 9, "tagged-variant tree +
// arena-of-proofs").
type AccProofIdx struct {
	SetIdx   int
	EntryIdx int
}

// ResultVOAcc is the accumulator-proof arena threaded through a single
// query: every disjointness proof generated while descending the intra
// index or skip list is deduplicated and stored here, addressed by
// AccProofIdx (spec.md section 4.9 step 3 and section 9's "open questions"
// note on ACC2 proof-entry addressing).
type ResultVOAcc struct {
	QueryExpSets []acc.Set
	// proofs[setIdx] holds one proof per entry under ACC1, or exactly one
	// combined proof (always at index 0) under ACC2.
	proofs [][]acc.Proof
	// objectAccs[setIdx] holds one accumulator value per entry, in both
	// variants: ACC2's accumulator check sums every entry before verifying.
	objectAccs [][]field.G1
}

// NewResultVOAcc returns an empty proof arena.
func NewResultVOAcc() *ResultVOAcc {
	return &ResultVOAcc{}
}

// indexOf returns the existing index of s in QueryExpSets, or appends it and
// returns the new index. Matches the original's linear dedup scan (spec.md
// section 4.9 step 3: "a bag query_exp_sets[] of distinct query sub-sets
// seen so far").
func (a *ResultVOAcc) indexOf(s acc.Set) int {
	for i, existing := range a.QueryExpSets {
		if existing.Equal(s) {
			return i
		}
	}
	a.QueryExpSets = append(a.QueryExpSets, s)
	a.proofs = append(a.proofs, nil)
	a.objectAccs = append(a.objectAccs, nil)
	return len(a.QueryExpSets) - 1
}

// AddProof generates a disjointness proof of objectSet against querySet and
// records it, returning the AccProofIdx a VO node should carry to reference
// it later. Under ACC1 each call gets its own proof entry; under ACC2 every
// call after the first combines its proof into entry 0 while still
// appending its own accumulator to objectAccs (spec.md section 4.9 step 3).
func (a *ResultVOAcc) AddProof(accType params.AccType, accumulator acc.Accumulator, pp *field.PublicParams, querySet, objectSet acc.Set, objectAcc field.G1) (AccProofIdx, error) {
	setIdx := a.indexOf(querySet)

	proof, err := accumulator.GenProof(pp, objectSet, querySet)
	if err != nil {
		return AccProofIdx{}, err
	}

	switch accType {
	case params.ACC1:
		a.proofs[setIdx] = append(a.proofs[setIdx], proof)
		a.objectAccs[setIdx] = append(a.objectAccs[setIdx], objectAcc)
		return AccProofIdx{SetIdx: setIdx, EntryIdx: len(a.proofs[setIdx]) - 1}, nil
	case params.ACC2:
		a.objectAccs[setIdx] = append(a.objectAccs[setIdx], objectAcc)
		if len(a.proofs[setIdx]) == 0 {
			a.proofs[setIdx] = append(a.proofs[setIdx], proof)
		} else {
			combined, cerr := a.proofs[setIdx][0].Combine(proof)
			if cerr != nil {
				return AccProofIdx{}, cerr
			}
			a.proofs[setIdx][0] = combined
		}
		return AccProofIdx{SetIdx: setIdx, EntryIdx: len(a.objectAccs[setIdx]) - 1}, nil
	}
	return AccProofIdx{}, acc.ErrWrongProofVariant
}

// GetObjectAcc returns the object-side accumulator value a VO node recorded
// at idx, the value the no-match and jump nodes' ComputeDigest read for
// acc_value.
func (a *ResultVOAcc) GetObjectAcc(idx AccProofIdx) (field.G1, bool) {
	if idx.SetIdx < 0 || idx.SetIdx >= len(a.objectAccs) {
		return field.G1{}, false
	}
	entries := a.objectAccs[idx.SetIdx]
	if idx.EntryIdx < 0 || idx.EntryIdx >= len(entries) {
		return field.G1{}, false
	}
	return entries[idx.EntryIdx], true
}

// Verify replays every recorded proof against its recorded query set in
// QueryExpSets (which InnerVerify has already checked against the freshly
// reduced BoolExp) and returns the first VerifyResult violation, or Ok.
// Under ACC2 only proofs[setIdx][0] is read: every entry beyond 0 only ever
// contributed to the combined proof and the accumulator sum, never a
// distinct proof slot.
func (a *ResultVOAcc) Verify(accType params.AccType, accumulator acc.Accumulator, pp *field.PublicParams) VerifyResult {
	for setIdx, querySet := range a.QueryExpSets {
		switch accType {
		case params.ACC1:
			queryAcc := acc.G1Value(accumulator.CalAccG1(pp, querySet))
			for entryIdx, proof := range a.proofs[setIdx] {
				objAcc := acc.G1Value(a.objectAccs[setIdx][entryIdx])
				ok, err := proof.Verify(pp, objAcc, queryAcc)
				if err != nil {
					return VerifyResult{Kind: InvalidAccIdx}
				}
				if !ok {
					return VerifyResult{Kind: InvalidAccProof}
				}
			}
		case params.ACC2:
			if len(a.proofs[setIdx]) == 0 {
				continue
			}
			queryAccG2 := accumulator.CalAccG2(pp, querySet)
			var sum field.G1
			for _, objAcc := range a.objectAccs[setIdx] {
				sum.Add(&sum, &objAcc)
			}
			ok, err := a.proofs[setIdx][0].Verify(pp, acc.G1Value(sum), acc.G1G2Value(field.G1{}, queryAccG2))
			if err != nil {
				return VerifyResult{Kind: InvalidAccIdx}
			}
			if !ok {
				return VerifyResult{Kind: InvalidAccProof}
			}
		}
	}
	return VerifyResult{Kind: Ok}
}
