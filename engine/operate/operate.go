// Package operate turns raw data payloads into scene graph fragments and removes them again.
// Each data type registers a Kind that decodes its payload into entries and builds one fragment
// per entry; fragments are tagged with the entry's type and id so they can be found later.
package operate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-globe/engine/figure"
	"github.com/Carmen-Shannon/oxy-globe/engine/node"
)

var (
	// ErrUnknownType is returned for a data type with no registered Kind.
	ErrUnknownType = errors.New("operate: unknown data type")
	// ErrBadPayload is returned when a payload cannot be decoded.
	ErrBadPayload = errors.New("operate: malformed data payload")
)

// RemoveAllIDs is the id sentinel that removes every fragment of a type.
const RemoveAllIDs = "removeAll"

// Entry is one decoded data item.
type Entry struct {
	ID    string
	Value any
}

// Kind describes how a data type is decoded and built.
type Kind struct {
	// Decode splits a raw payload into entries.
	Decode func(data []byte) ([]Entry, error)
	// Build creates the fragment for one entry. It runs on a worker goroutine.
	Build func(env figure.Env, entry Entry) (node.Node, error)
}

// Operator is the data layer between the scene controller and the figure builders.
type Operator interface {
	// Register adds or replaces the Kind for a data type.
	Register(dataType string, kind Kind)

	// Types returns the registered data types in sorted order.
	Types() []string

	// Decode splits a payload into entries and assigns ids to entries without one.
	//
	// Parameters:
	//   - dataType: the registered data type
	//   - data: the raw JSON payload
	//
	// Returns:
	//   - []Entry: the decoded entries
	//   - error: ErrUnknownType or ErrBadPayload
	Decode(dataType string, data []byte) ([]Entry, error)

	// Build decodes a payload and builds one fragment per entry in parallel. Fragments are returned
	// in payload order. If any entry fails, every fragment already built is disposed and the
	// errors are returned joined, so either all entries land in the scene or none do.
	//
	// Parameters:
	//   - ctx: cancels a build before all entries are submitted
	//   - dataType: the registered data type
	//   - data: the raw JSON payload
	//
	// Returns:
	//   - []node.Node: the fragments, tagged with the type and entry id
	//   - error: error if decoding or any build fails
	Build(ctx context.Context, dataType string, data []byte) ([]node.Node, error)

	// Remove detaches and disposes the direct children of root that carry dataType and one of
	// ids. An id equal to RemoveAllIDs removes every fragment of the type.
	//
	// Returns:
	//   - int: the number of fragments removed
	Remove(root node.Node, dataType string, ids ...string) int

	// RemoveAll detaches and disposes every direct child of root that carries dataType.
	RemoveAll(root node.Node, dataType string) int

	// Close stops the build workers.
	Close()
}

// operator is the implementation of the Operator interface.
type operator struct {
	mu *sync.Mutex

	env     figure.Env
	kinds   map[string]Kind
	workers int
	pool    worker.DynamicWorkerPool
	nextID  int
	closed  bool
	logger  *slog.Logger
}

var _ Operator = &operator{}

// NewOperator creates an Operator with the flyLine and point types registered.
//
// Parameters:
//   - env: the environment passed to every build
//   - options: functional options to configure the operator
//
// Returns:
//   - Operator: the new operator
func NewOperator(env figure.Env, options ...OperatorBuilderOption) Operator {
	o := &operator{
		mu:      &sync.Mutex{},
		env:     env,
		kinds:   make(map[string]Kind),
		workers: 4,
		logger:  env.Logger,
	}
	o.kinds[TypeFlyLine] = FlyLineKind()
	o.kinds[TypePoint] = PointKind()
	for _, opt := range options {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With("component", "operate")
	o.pool = worker.NewDynamicWorkerPool(o.workers, o.workers*4, time.Second)
	return o
}

func (o *operator) Register(dataType string, kind Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.kinds[dataType] = kind
}

func (o *operator) Types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.kinds))
	for t := range o.kinds {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (o *operator) kind(dataType string) (Kind, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	k, ok := o.kinds[dataType]
	if !ok || k.Decode == nil || k.Build == nil {
		return Kind{}, fmt.Errorf("%w: %q", ErrUnknownType, dataType)
	}
	return k, nil
}

func (o *operator) Decode(dataType string, data []byte) ([]Entry, error) {
	k, err := o.kind(dataType)
	if err != nil {
		return nil, err
	}
	entries, err := k.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", dataType, err)
	}
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = NewEntryID(dataType)
		}
	}
	return entries, nil
}

func (o *operator) Build(ctx context.Context, dataType string, data []byte) ([]node.Node, error) {
	k, err := o.kind(dataType)
	if err != nil {
		return nil, err
	}
	entries, err := o.Decode(dataType, data)
	if err != nil {
		return nil, err
	}

	results := make([]node.Node, len(entries))
	errs := make([]error, len(entries))
	var wg sync.WaitGroup

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		o.mu.Lock()
		if o.closed {
			o.mu.Unlock()
			errs[i] = errors.New("operate: operator closed")
			break
		}
		id := o.nextID
		o.nextID++
		o.mu.Unlock()

		wg.Add(1)
		o.pool.SubmitTask(worker.Task{
			ID:      id,
			Payload: entry,
			Do: func() (any, error) {
				defer wg.Done()
				frag, err := k.Build(o.env, entry)
				if err == nil && frag == nil {
					err = errors.New("no fragment")
				}
				if err != nil {
					errs[i] = fmt.Errorf("build %s %s: %w", dataType, entry.ID, err)
					return nil, errs[i]
				}
				tag(frag, node.UserData{Type: dataType, ID: entry.ID})
				results[i] = frag
				return frag, nil
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		for _, frag := range results {
			node.Clear(frag)
		}
		return nil, err
	}
	o.logger.Debug("data built", "type", dataType, "entries", len(results))
	return results, nil
}

// tag stamps the entry identity on the fragment and every node below it.
func tag(frag node.Node, data node.UserData) {
	node.Traverse(frag, func(n node.Node) bool {
		n.SetUserData(data)
		return true
	})
}

func (o *operator) Remove(root node.Node, dataType string, ids ...string) int {
	if slices.Contains(ids, RemoveAllIDs) {
		return o.RemoveAll(root, dataType)
	}
	return o.removeWhere(root, dataType, func(id string) bool {
		return slices.Contains(ids, id)
	})
}

func (o *operator) RemoveAll(root node.Node, dataType string) int {
	return o.removeWhere(root, dataType, func(string) bool { return true })
}

func (o *operator) removeWhere(root node.Node, dataType string, match func(id string) bool) int {
	if root == nil {
		return 0
	}
	removed := 0
	for _, child := range root.Children() {
		data := child.UserData()
		if data.Type != dataType || !match(data.ID) {
			continue
		}
		node.Detach(child)
		removed++
	}
	if removed > 0 {
		o.logger.Debug("data removed", "type", dataType, "count", removed)
	}
	return removed
}

func (o *operator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()
	o.pool.Stop()
}
