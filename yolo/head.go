// Package yolo interprets the output tensor of YOLO-family detection models.
//
// Exported detectors emit one row per candidate box: 4 box coordinates, an optional
// objectness score, then one score per class. The tensor may come out as (1, C, N),
// (1, N, C) or (N, C); C (features) is small, N (candidates, e.g. 8400) is large.
package yolo

import (
	"errors"
	"fmt"
)

const (
	maxFeatures = 512
	minFeatures = 6
	boxFields   = 4
	// C at or above this is assumed to carry an objectness column when the class
	// count is unknown (4 + 1 + 80 for COCO).
	objHeuristic = boxFields + 1 + 80
)

var ErrShape = errors.New("unsupported output shape")

// Head is a detection output in (N x C) terms.
type Head struct {
	Features   int
	Candidates int
}

// Layout determines features and candidates from tensor dims.
func Layout(dims []int) (Head, error) {
	var d1, d2 int
	switch len(dims) {
	case 3:
		if dims[0] != 1 {
			return Head{}, fmt.Errorf("%w: batch %d", ErrShape, dims[0])
		}
		d1, d2 = dims[1], dims[2]
	case 2:
		return check(Head{Features: dims[1], Candidates: dims[0]})
	default:
		return Head{}, fmt.Errorf("%w: %d dims", ErrShape, len(dims))
	}

	d1IsC := d1 <= maxFeatures
	d2IsC := d2 <= maxFeatures
	switch {
	case d1IsC && !d2IsC:
		return check(Head{Features: d1, Candidates: d2})
	case !d1IsC && d2IsC:
		return check(Head{Features: d2, Candidates: d1})
	case d1 <= d2:
		return check(Head{Features: d1, Candidates: d2})
	default:
		return check(Head{Features: d2, Candidates: d1})
	}
}

func check(h Head) (Head, error) {
	if h.Features < minFeatures || h.Candidates <= 0 {
		return Head{}, fmt.Errorf("%w: %d features x %d candidates", ErrShape, h.Features, h.Candidates)
	}
	return h, nil
}

// Matches reports whether n classes fit this head, with or without an objectness column.
func (h Head) Matches(n int) bool {
	return h.Features-boxFields == n || h.Features-boxFields-1 == n
}

// HasObjectness resolves the objectness column using the expected class count n
// (pass 0 when unknown).
func (h Head) HasObjectness(n int) bool {
	switch {
	case n > 0 && h.Features-boxFields-1 == n:
		return true
	case n > 0 && h.Features-boxFields == n:
		return false
	default:
		return h.Features >= objHeuristic
	}
}

// Classes is the class count implied by the head.
func (h Head) Classes(n int) int {
	if h.HasObjectness(n) {
		return h.Features - boxFields - 1
	}
	return h.Features - boxFields
}
