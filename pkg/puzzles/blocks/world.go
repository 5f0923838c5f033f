// Package blocks implements the block-stacking planner as a search domain.
//
// A world has a robot arm that holds at most one block and a fixed number of
// stacks. Stacks are listed top first. A move either picks up the top block of
// a stack (arm empty) or puts the held block on top of a stack (arm full); an
// empty stack is the table.
//
// Two worlds are equal when the arm holds the same block and they contain the
// same stacks, in any order.
package blocks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidWorld is returned when a world definition is inconsistent.
var ErrInvalidWorld = errors.New("invalid world")

// Table is the value of "lower" meaning the block rests on the table.
const Table = ""

// World is an immutable block-world configuration.
// Stack slices are shared between a world and its children and are never
// written after construction.
type World struct {
	arm    string
	stacks [][]string
	key    string
}

// New builds a world. An empty arm means the arm is free. Missing stacks up to
// maxStacks are added empty.
func New(arm string, stacks [][]string, maxStacks int) (World, error) {
	if maxStacks < 1 {
		return World{}, fmt.Errorf("%w: max stacks must be positive, got %d", ErrInvalidWorld, maxStacks)
	}
	if len(stacks) > maxStacks {
		return World{}, fmt.Errorf("%w: %d stacks exceed max of %d", ErrInvalidWorld, len(stacks), maxStacks)
	}

	seen := make(map[string]bool)
	check := func(block string) error {
		if block == "" {
			return fmt.Errorf("%w: empty block name", ErrInvalidWorld)
		}
		if strings.ContainsAny(block, ",;|") {
			return fmt.Errorf("%w: block %q contains a reserved character", ErrInvalidWorld, block)
		}
		if seen[block] {
			return fmt.Errorf("%w: duplicate block %q", ErrInvalidWorld, block)
		}
		seen[block] = true
		return nil
	}

	if arm != "" {
		if err := check(arm); err != nil {
			return World{}, err
		}
	}

	own := make([][]string, maxStacks)
	for i, stack := range stacks {
		for _, block := range stack {
			if err := check(block); err != nil {
				return World{}, err
			}
		}
		own[i] = append([]string(nil), stack...)
	}

	return newWorld(arm, own), nil
}

// MustNew is like New but panics on invalid input. Intended for fixtures.
func MustNew(arm string, stacks [][]string, maxStacks int) World {
	w, err := New(arm, stacks, maxStacks)
	if err != nil {
		panic(err)
	}
	return w
}

func newWorld(arm string, stacks [][]string) World {
	encoded := make([]string, len(stacks))
	for i, stack := range stacks {
		encoded[i] = strings.Join(stack, ",")
	}
	sort.Strings(encoded)
	return World{
		arm:    arm,
		stacks: stacks,
		key:    arm + "|" + strings.Join(encoded, ";"),
	}
}

// Key returns the canonical encoding: the held block, then the sorted stacks.
func (w World) Key() string { return w.key }

// Arm returns the held block, or "" when the arm is free.
func (w World) Arm() string { return w.arm }

// MaxStacks returns the number of stacks, empty ones included.
func (w World) MaxStacks() int { return len(w.stacks) }

// Stacks returns a copy of the stacks, top first.
func (w World) Stacks() [][]string {
	out := make([][]string, len(w.stacks))
	for i, stack := range w.stacks {
		out[i] = append([]string(nil), stack...)
	}
	return out
}

// Size returns the number of blocks, the held one included.
func (w World) Size() int {
	n := 0
	for _, stack := range w.stacks {
		n += len(stack)
	}
	if w.arm != "" {
		n++
	}
	return n
}

// FreeBlocks returns the top block of every non-empty stack.
func (w World) FreeBlocks() []string {
	var free []string
	for _, stack := range w.stacks {
		if len(stack) > 0 {
			free = append(free, stack[0])
		}
	}
	return free
}

// IsAbove reports whether upper sits directly on lower. A lower of Table asks
// whether upper rests on the table. A held block is above nothing.
func (w World) IsAbove(upper, lower string) bool {
	for _, stack := range w.stacks {
		for i, block := range stack {
			if block != upper {
				continue
			}
			if i+1 >= len(stack) {
				return lower == Table
			}
			return stack[i+1] == lower
		}
	}
	return false
}

// IsFree reports whether nothing sits on block and it is not held.
func (w World) IsFree(block string) bool {
	if w.arm == block {
		return false
	}
	for _, stack := range w.stacks {
		if len(stack) > 0 && stack[0] == block {
			return true
		}
	}
	return false
}

// OnTable reports whether block is at the bottom of a stack.
func (w World) OnTable(block string) bool {
	if w.arm == block {
		return false
	}
	for _, stack := range w.stacks {
		if len(stack) > 0 && stack[len(stack)-1] == block {
			return true
		}
	}
	return false
}

// Children returns the worlds reachable in one move. With a free arm, the top
// block of each stack is picked up in stack order; with a held block, it is
// put on each stack in turn.
func (w World) Children() []World {
	if w.arm == "" {
		children := make([]World, 0, len(w.stacks))
		for i, stack := range w.stacks {
			if len(stack) == 0 {
				continue
			}
			children = append(children, newWorld(stack[0], w.replace(i, stack[1:])))
		}
		return children
	}

	children := make([]World, 0, len(w.stacks))
	for i, stack := range w.stacks {
		grown := make([]string, 0, len(stack)+1)
		grown = append(grown, w.arm)
		grown = append(grown, stack...)
		children = append(children, newWorld("", w.replace(i, grown)))
	}
	return children
}

// replace returns a new outer slice where stack i is swapped for stack.
// Untouched stacks are shared with the receiver.
func (w World) replace(i int, stack []string) [][]string {
	out := make([][]string, len(w.stacks))
	copy(out, w.stacks)
	out[i] = stack
	return out
}

// String renders the arm and every stack bottom first, padded with "_" to the
// world size.
func (w World) String() string {
	var sb strings.Builder
	arm := w.arm
	if arm == "" {
		arm = "-"
	}
	fmt.Fprintf(&sb, "Arm: %s", arm)
	size := w.Size()
	for i, stack := range w.stacks {
		fmt.Fprintf(&sb, "\nStack #%d:", i)
		for j := len(stack) - 1; j >= 0; j-- {
			sb.WriteString(" " + stack[j])
		}
		sb.WriteString(strings.Repeat(" _", size-len(stack)))
	}
	return sb.String()
}
