// Package tidy positions trees with the non-layered tidy tree algorithm.
//
// Nodes at the same depth do not have to share a layer: each node starts
// exactly where its parent's extent ends, and siblings are packed as tightly
// as their subtree contours allow. The result is the "compact box" layout.
//
// The algorithm runs in linear time. Contours are followed through thread
// pointers, and shifts between non-adjacent siblings are spread lazily with
// shift/change accumulators that are settled in the second walk.
//
// Layout works on the canonical orientations only (LR when horizontal, TB
// otherwise). Mirroring, splitting and anchoring are the orientation
// pipeline's job.
package tidy

import "github.com/matzehuels/treelayout/pkg/hierarchy"

// wrapped is the algorithm's view of a node. w is the extent on the packing
// axis, h the extent on the layered axis and y the layered coordinate. x is
// the final packing coordinate.
type wrapped struct {
	w, h, y, x float64
	c          []*wrapped

	prelim, mod   float64
	shift, change float64

	// tl and tr are the left and right threads, el and er the extreme
	// left and right leaves of the subtree, msel and mser their modifier
	// sums.
	tl, tr     *wrapped
	el, er     *wrapped
	msel, mser float64
}

func (t *wrapped) bottom() float64 { return t.y + t.h }

func (t *wrapped) nextLeftContour() *wrapped {
	if len(t.c) == 0 {
		return t.tl
	}
	return t.c[0]
}

func (t *wrapped) nextRightContour() *wrapped {
	if len(t.c) == 0 {
		return t.tr
	}
	return t.c[len(t.c)-1]
}

// iyl is one entry of the list of lowest vertical coordinates seen so far
// among the left siblings, with the index of the sibling that owns it.
type iyl struct {
	low   float64
	index int
	nxt   *iyl
}

func updateIYL(low float64, index int, ih *iyl) *iyl {
	for ih != nil && low >= ih.low {
		ih = ih.nxt
	}
	return &iyl{low: low, index: index, nxt: ih}
}

// Layout assigns X and Y to every node under root.
//
// The layered coordinate is the running sum of ancestor extents (Width when
// horizontal, Height otherwise). The packing coordinate is normalized so its
// minimum over the tree is zero.
func Layout(root *hierarchy.Node, horizontal bool) {
	layer(root, horizontal)
	wt, pairs := wrap(root, horizontal)
	firstWalk(wt)
	secondWalk(wt)
	for _, p := range pairs {
		if horizontal {
			p.node.Y = p.wt.x
		} else {
			p.node.X = p.wt.x
		}
	}
	normalize(root, horizontal)
}

// layer sets the layered coordinate of every node.
func layer(root *hierarchy.Node, horizontal bool) {
	type item struct {
		n *hierarchy.Node
		d float64
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next := it.d
		if horizontal {
			it.n.X = it.d
			next += it.n.Width
		} else {
			it.n.Y = it.d
			next += it.n.Height
		}
		for _, c := range it.n.Children {
			stack = append(stack, item{c, next})
		}
	}
}

type pair struct {
	node *hierarchy.Node
	wt   *wrapped
}

// wrap mirrors the tree into wrapped nodes and returns the root together
// with every (node, wrapper) pair for the write-back.
func wrap(root *hierarchy.Node, horizontal bool) (*wrapped, []pair) {
	newWrapped := func(n *hierarchy.Node) *wrapped {
		if horizontal {
			return &wrapped{w: n.Height, h: n.Width, y: n.X}
		}
		return &wrapped{w: n.Width, h: n.Height, y: n.Y}
	}

	top := newWrapped(root)
	pairs := []pair{{root, top}}
	for i := 0; i < len(pairs); i++ {
		p := pairs[i]
		if len(p.node.Children) == 0 {
			continue
		}
		p.wt.c = make([]*wrapped, len(p.node.Children))
		for j, child := range p.node.Children {
			cw := newWrapped(child)
			p.wt.c[j] = cw
			pairs = append(pairs, pair{child, cw})
		}
	}
	return top, pairs
}

// frame is the post-order state of one internal node in the first walk.
type frame struct {
	t    *wrapped
	next int
	ih   *iyl
}

func firstWalk(root *wrapped) {
	if len(root.c) == 0 {
		setExtremes(root)
		return
	}

	stack := []*frame{{t: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.t.c) {
			child := f.t.c[f.next]
			if len(child.c) == 0 {
				setExtremes(child)
				childDone(f)
				continue
			}
			stack = append(stack, &frame{t: child})
			continue
		}

		positionRoot(f.t)
		setExtremes(f.t)
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			childDone(stack[len(stack)-1])
		}
	}
}

// childDone runs once child f.next of f.t has been fully walked.
func childDone(f *frame) {
	t, i := f.t, f.next
	if i == 0 {
		f.ih = updateIYL(t.c[0].el.bottom(), 0, nil)
	} else {
		low := t.c[i].er.bottom()
		separate(t, i, f.ih)
		f.ih = updateIYL(low, i, f.ih)
	}
	f.next++
}

func setExtremes(t *wrapped) {
	if len(t.c) == 0 {
		t.el, t.er = t, t
		t.msel, t.mser = 0, 0
		return
	}
	first, last := t.c[0], t.c[len(t.c)-1]
	t.el, t.msel = first.el, first.msel
	t.er, t.mser = last.er, last.mser
}

// separate pushes child i of t right until its left contour clears the right
// contour of children 0..i-1.
func separate(t *wrapped, i int, ih *iyl) {
	sr := t.c[i-1]
	mssr := sr.mod
	cl := t.c[i]
	mscl := cl.mod

	for sr != nil && cl != nil {
		if sr.bottom() > ih.low {
			ih = ih.nxt
		}
		dist := mssr + sr.prelim + sr.w - (mscl + cl.prelim)
		if dist > 0 {
			mscl += dist
			moveSubtree(t, i, ih.index, dist)
		}

		sy, cy := sr.bottom(), cl.bottom()
		if sy <= cy {
			sr = sr.nextRightContour()
			if sr != nil {
				mssr += sr.mod
			}
		}
		if sy >= cy {
			cl = cl.nextLeftContour()
			if cl != nil {
				mscl += cl.mod
			}
		}
	}

	switch {
	case sr == nil && cl != nil:
		setLeftThread(t, i, cl, mscl)
	case sr != nil && cl == nil:
		setRightThread(t, i, sr, mssr)
	}
}

func moveSubtree(t *wrapped, i, si int, dist float64) {
	c := t.c[i]
	c.mod += dist
	c.msel += dist
	c.mser += dist
	distributeExtra(t, i, si, dist)
}

func distributeExtra(t *wrapped, i, si int, dist float64) {
	if si == i-1 {
		return
	}
	nr := float64(i - si)
	t.c[si+1].shift += dist / nr
	t.c[i].shift -= dist / nr
	t.c[i].change -= dist - dist/nr
}

func setLeftThread(t *wrapped, i int, cl *wrapped, modsumcl float64) {
	li := t.c[0].el
	li.tl = cl
	diff := modsumcl - cl.mod - t.c[0].msel
	li.mod += diff
	li.prelim -= diff
	t.c[0].el = t.c[i].el
	t.c[0].msel = t.c[i].msel
}

func setRightThread(t *wrapped, i int, sr *wrapped, modsumsr float64) {
	ri := t.c[i].er
	ri.tr = sr
	diff := modsumsr - sr.mod - t.c[i].mser
	ri.mod += diff
	ri.prelim -= diff
	t.c[i].er = t.c[i-1].er
	t.c[i].mser = t.c[i-1].mser
}

// positionRoot centers t between its first and last child.
func positionRoot(t *wrapped) {
	first, last := t.c[0], t.c[len(t.c)-1]
	t.prelim = (first.prelim+first.mod+last.mod+last.prelim+last.w)/2 - t.w/2
}

func secondWalk(root *wrapped) {
	type item struct {
		t      *wrapped
		modsum float64
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		modsum := it.modsum + it.t.mod
		it.t.x = it.t.prelim + modsum
		addChildSpacing(it.t)
		for i := len(it.t.c) - 1; i >= 0; i-- {
			stack = append(stack, item{it.t.c[i], modsum})
		}
	}
}

func addChildSpacing(t *wrapped) {
	var d, modsumdelta float64
	for _, c := range t.c {
		d += c.shift
		modsumdelta += d + c.change
		c.mod += modsumdelta
	}
}

// normalize shifts the tree on the packing axis so its minimum is zero. The
// move is a plain coordinate shift; pre-offsets are not applied.
func normalize(root *hierarchy.Node, horizontal bool) {
	first := true
	var low float64
	root.EachNode(func(n *hierarchy.Node) {
		v := n.X
		if horizontal {
			v = n.Y
		}
		if first || v < low {
			low, first = v, false
		}
	})
	root.EachNode(func(n *hierarchy.Node) {
		if horizontal {
			n.Y -= low
		} else {
			n.X -= low
		}
	})
}
