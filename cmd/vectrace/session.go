package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/growvec"
	"github.com/wippyai/growvec/alloc"
	"github.com/wippyai/growvec/alloc/linear"
	"github.com/wippyai/growvec/alloc/mmap"
	"github.com/wippyai/growvec/errors"
	"github.com/wippyai/growvec/vec"
)

type sessionConfig struct {
	alloc    string
	limit    uint64
	maxPages uint32
}

// session replays commands against a single Vec.
type session struct {
	vec      *vec.Vec[int64]
	counting *alloc.Counting[int64]
	backend  string
	cleanup  func() error
}

func newSession(ctx context.Context, cfg sessionConfig) (*session, error) {
	var (
		base    growvec.Allocator[int64]
		cleanup = func() error { return nil }
	)

	switch cfg.alloc {
	case "", "heap", "counting":
		base = alloc.NewHeap[int64]()
	case "mmap":
		base = mmap.New[int64]()
	case "linear":
		a, err := linear.New[int64](ctx, &linear.Config{MaxPages: cfg.maxPages})
		if err != nil {
			return nil, err
		}
		base = a
		cleanup = func() error { return a.Close(ctx) }
	default:
		return nil, fmt.Errorf("unknown allocator %q (want heap, counting, mmap or linear)", cfg.alloc)
	}

	if cfg.limit > 0 {
		base = alloc.NewLimited(base, cfg.limit)
	}
	counting := alloc.NewCounting(base)

	name := cfg.alloc
	if name == "" {
		name = "heap"
	}
	return &session{
		vec:      vec.NewWithOptions(vec.Options[int64]{Allocator: counting}),
		counting: counting,
		backend:  name,
		cleanup:  cleanup,
	}, nil
}

// Close closes the Vec and releases the backend.
func (s *session) Close() error {
	if err := s.exec(func() (string, error) {
		s.vec.Close()
		return "", nil
	}); err != nil {
		_ = s.cleanup()
		return err
	}
	return s.cleanup()
}

// Stats returns the accounting of every block the session allocated.
func (s *session) Stats() alloc.Stats {
	return s.counting.Stats()
}

// Status summarizes the Vec for display.
func (s *session) Status() string {
	return fmt.Sprintf("len=%d cap=%d", s.vec.Len(), s.vec.Cap())
}

// Exec runs one command. Fatal container errors are recovered and returned.
func (s *session) Exec(line string) (string, error) {
	var out string
	err := s.exec(func() (string, error) {
		var err error
		out, err = s.dispatch(strings.Fields(line))
		return out, err
	})
	return out, err
}

func (s *session) exec(fn func() (string, error)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	_, err = fn()
	return err
}

func (s *session) dispatch(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "push":
		n, err := intArgs(cmd, args, 1)
		if err != nil {
			return "", err
		}
		s.vec.Push(n[0])
		return s.Status(), nil

	case "pop":
		if _, err := intArgs(cmd, args, 0); err != nil {
			return "", err
		}
		v, ok := s.vec.Pop()
		if !ok {
			return "empty", nil
		}
		return strconv.FormatInt(v, 10), nil

	case "insert":
		n, err := intArgs(cmd, args, 2)
		if err != nil {
			return "", err
		}
		s.vec.Insert(int(n[0]), n[1])
		return s.Status(), nil

	case "remove":
		n, err := intArgs(cmd, args, 1)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(s.vec.Remove(int(n[0])), 10), nil

	case "get":
		n, err := intArgs(cmd, args, 1)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(s.vec.At(int(n[0])), 10), nil

	case "set":
		n, err := intArgs(cmd, args, 2)
		if err != nil {
			return "", err
		}
		old := s.vec.Set(int(n[0]), n[1])
		return "was " + strconv.FormatInt(old, 10), nil

	case "len":
		return strconv.Itoa(s.vec.Len()), nil

	case "cap":
		return strconv.Itoa(s.vec.Cap()), nil

	case "show":
		return formatValues(s.vec.Slice()), nil

	case "drain", "drainback":
		limit := -1
		if len(args) > 0 {
			n, err := intArgs(cmd, args, 1)
			if err != nil {
				return "", err
			}
			limit = int(n[0])
		}
		return s.drain(limit, cmd == "drainback"), nil

	case "into", "rev":
		if _, err := intArgs(cmd, args, 0); err != nil {
			return "", err
		}
		it := s.vec.IntoIter()
		defer it.Close()
		seq := it.All()
		if cmd == "rev" {
			seq = it.Backward()
		}
		var got []int64
		for v := range seq {
			got = append(got, v)
		}
		return formatValues(got), nil

	case "close":
		s.vec.Close()
		return "closed", nil

	default:
		return "", fmt.Errorf("unknown command %q", cmd)
	}
}

// drain takes up to limit elements (all when negative) and discards the rest.
func (s *session) drain(limit int, back bool) string {
	d := s.vec.Drain()
	defer d.Close()

	next := d.Next
	if back {
		next = d.NextBack
	}
	var got []int64
	for limit < 0 || len(got) < limit {
		v, ok := next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	return fmt.Sprintf("%s dropped=%d", formatValues(got), d.Len())
}

func intArgs(cmd string, args []string, want int) ([]int64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", cmd, want, len(args))
	}
	out := make([]int64, want)
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd, err)
		}
		out[i] = v
	}
	return out, nil
}

func formatValues(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// splitScript breaks a script into commands. Commands are separated by
// newlines or semicolons; '#' starts a comment that runs to end of line.
func splitScript(src string) []string {
	var out []string
	for _, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, cmd := range strings.Split(line, ";") {
			if cmd = strings.TrimSpace(cmd); cmd != "" {
				out = append(out, cmd)
			}
		}
	}
	return out
}
