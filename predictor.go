package triage

import (
	"sync"

	"github.com/jesee-kuya/triage/record"
	"github.com/jesee-kuya/triage/tree"
)

/*
Prediction bundles the predicted class value for each of the five
target fields. Every field always holds a value; a tree grown from
empty training data contributes the unknown class.
*/
type Prediction struct {
	Clinician string
	GPT4      string
	Llama     string
	Gemini    string
	DdxSnomed string
}

/*
Value returns the prediction for the given target field.
*/
func (p Prediction) Value(target record.TargetField) string {
	switch target {
	case record.Clinician:
		return p.Clinician
	case record.GPT4:
		return p.GPT4
	case record.Llama:
		return p.Llama
	case record.Gemini:
		return p.Gemini
	case record.DdxSnomed:
		return p.DdxSnomed
	}
	return ""
}

/*
MultiTargetPredictor owns one independently grown tree per target
field and fans every prediction out to all five. The target set is
closed, so the predictor is a fixed five-model facade rather than a
registry.
*/
type MultiTargetPredictor struct {
	clinician *tree.Tree
	gpt4      *tree.Tree
	llama     *tree.Tree
	gemini    *tree.Tree
	ddxSnomed *tree.Tree
}

/*
BuildPredictor takes a training record set and the pruning parameters
and grows the five per-target trees, one goroutine each. The record
set is only read, and the builds share nothing else, so they run
without locking; all five are joined before the predictor is returned.
*/
func BuildPredictor(records []record.Record, params TreeParams) *MultiTargetPredictor {
	targets := record.Targets()
	trees := make([]*tree.Tree, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target record.TargetField) {
			defer wg.Done()
			trees[i] = Grow(records, target, params)
		}(i, target)
	}
	wg.Wait()
	return &MultiTargetPredictor{trees[0], trees[1], trees[2], trees[3], trees[4]}
}

/*
Predict takes a record and returns the bundle of class values the five
trees assign to it.
*/
func (mp *MultiTargetPredictor) Predict(r record.Record) Prediction {
	return Prediction{
		Clinician: mp.clinician.Predict(r),
		GPT4:      mp.gpt4.Predict(r),
		Llama:     mp.llama.Predict(r),
		Gemini:    mp.gemini.Predict(r),
		DdxSnomed: mp.ddxSnomed.Predict(r),
	}
}

/*
Tree returns the grown tree for the given target field, or nil for an
unknown target.
*/
func (mp *MultiTargetPredictor) Tree(target record.TargetField) *tree.Tree {
	switch target {
	case record.Clinician:
		return mp.clinician
	case record.GPT4:
		return mp.gpt4
	case record.Llama:
		return mp.llama
	case record.Gemini:
		return mp.gemini
	case record.DdxSnomed:
		return mp.ddxSnomed
	}
	return nil
}
