package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/evcraddock/portfolio/internal/comment"
)

// fakeAPI answers ListComments from a script and records calls.
type fakeAPI struct {
	mu         sync.Mutex
	comments   []*comment.Comment
	listErr    error
	deleteErr  error
	counts     []int
	deletes    int
	gate       chan struct{} // when set, DeleteComments blocks until closed
	listGates  map[int]chan struct{}
	listResult map[int][]*comment.Comment
}

func (f *fakeAPI) ListComments(ctx context.Context, n int) ([]*comment.Comment, error) {
	f.mu.Lock()
	f.counts = append(f.counts, n)
	gate := f.listGates[n]
	result, scripted := f.listResult[n]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	if scripted {
		return result, nil
	}
	if n < len(f.comments) {
		return f.comments[:n], nil
	}
	return f.comments, nil
}

func (f *fakeAPI) DeleteComments(ctx context.Context) (int64, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	n := int64(len(f.comments))
	f.comments = nil
	return n, nil
}

func (f *fakeAPI) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes
}

// recordingView remembers the current region contents and every call.
type recordingView struct {
	mu          sync.Mutex
	list        []*comment.Comment
	rendered    int
	deleteShown bool
	reloads     int
	calls       []string
}

func (v *recordingView) RenderList(comments []*comment.Comment) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.list = comments
	v.rendered++
	v.calls = append(v.calls, "render")
	return nil
}

func (v *recordingView) ShowDeleteControl() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleteShown = true
	v.calls = append(v.calls, "show")
	return nil
}

func (v *recordingView) HideDeleteControl() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleteShown = false
	v.calls = append(v.calls, "hide")
	return nil
}

func (v *recordingView) Reload(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reloads++
	v.calls = append(v.calls, "reload")
	return nil
}

func sample(texts ...string) []*comment.Comment {
	out := make([]*comment.Comment, len(texts))
	for i, text := range texts {
		out[i] = &comment.Comment{ID: int64(i + 1), AuthorName: "A", CommentText: text}
	}
	return out
}

func TestListRendersServerOrder(t *testing.T) {
	api := &fakeAPI{comments: sample("c", "b", "a")}
	view := &recordingView{}
	b := New(api, view)

	if err := b.List(context.Background(), 2); err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(api.counts) != 1 || api.counts[0] != 2 {
		t.Errorf("requested counts = %v, want [2]", api.counts)
	}
	if len(view.list) != 2 {
		t.Fatalf("rendered %d comments, want 2", len(view.list))
	}
	if view.list[0].CommentText != "c" || view.list[1].CommentText != "b" {
		t.Errorf("rendered order = %q, %q", view.list[0].CommentText, view.list[1].CommentText)
	}
	if !view.deleteShown {
		t.Error("expected delete control shown")
	}
	if !b.DeleteControlVisible() {
		t.Error("expected DeleteControlVisible")
	}
}

func TestListEmptyHidesDeleteControl(t *testing.T) {
	api := &fakeAPI{comments: sample("a")}
	view := &recordingView{}
	b := New(api, view)
	ctx := context.Background()

	if err := b.List(ctx, 5); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if !view.deleteShown {
		t.Fatal("expected delete control after non-empty list")
	}

	api.comments = nil
	if err := b.List(ctx, 5); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if view.deleteShown {
		t.Error("expected delete control removed after empty list")
	}
	if len(view.list) != 0 {
		t.Errorf("rendered %d comments, want 0", len(view.list))
	}
	if b.DeleteControlVisible() {
		t.Error("expected DeleteControlVisible false")
	}
}

func TestListZeroCount(t *testing.T) {
	api := &fakeAPI{comments: sample("a", "b")}
	view := &recordingView{}

	if err := New(api, view).List(context.Background(), 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(view.list) != 0 || view.deleteShown {
		t.Errorf("list = %v, deleteShown = %v", view.list, view.deleteShown)
	}
}

func TestListNegativeCount(t *testing.T) {
	api := &fakeAPI{}
	view := &recordingView{}

	err := New(api, view).List(context.Background(), -1)
	if !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("err = %v, want ErrNegativeCount", err)
	}
	if len(api.counts) != 0 {
		t.Error("expected no request for negative count")
	}
}

func TestListRebuildsEachTime(t *testing.T) {
	api := &fakeAPI{comments: sample("a", "b")}
	view := &recordingView{}
	b := New(api, view)
	ctx := context.Background()

	if err := b.List(ctx, 2); err != nil {
		t.Fatalf("first list: %v", err)
	}
	first := view.list
	if err := b.List(ctx, 2); err != nil {
		t.Fatalf("second list: %v", err)
	}
	second := view.list

	if view.rendered != 2 {
		t.Errorf("rendered %d times, want 2", view.rendered)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].CommentText != second[i].CommentText {
			t.Errorf("item %d differs: %q vs %q", i, first[i].CommentText, second[i].CommentText)
		}
	}
	if &first[0] == &second[0] {
		t.Error("expected a freshly built list, got the same backing array")
	}
}

func TestListErrorKeepsPreviousRegion(t *testing.T) {
	api := &fakeAPI{comments: sample("a")}
	view := &recordingView{}
	b := New(api, view)
	ctx := context.Background()

	if err := b.List(ctx, 1); err != nil {
		t.Fatalf("list: %v", err)
	}

	api.listErr = errors.New("network down")
	err := b.List(ctx, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, api.listErr) {
		t.Errorf("err = %v, want wrapped network error", err)
	}
	if view.rendered != 1 {
		t.Errorf("rendered %d times, want 1", view.rendered)
	}
	if len(view.list) != 1 || !view.deleteShown {
		t.Error("expected previous region left in place")
	}
}

func TestListDiscardsStaleResponse(t *testing.T) {
	slow := make(chan struct{})
	api := &fakeAPI{
		listGates: map[int]chan struct{}{1: slow},
		listResult: map[int][]*comment.Comment{
			1: sample("old"),
			2: sample("new", "newer"),
		},
	}
	view := &recordingView{}
	b := New(api, view)
	ctx := context.Background()

	staleErr := make(chan error, 1)
	go func() { staleErr <- b.List(ctx, 1) }()

	// Wait until the slow request has been issued.
	deadline := time.Now().Add(2 * time.Second)
	for {
		api.mu.Lock()
		issued := len(api.counts)
		api.mu.Unlock()
		if issued == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("slow request never issued")
		}
		time.Sleep(time.Millisecond)
	}

	if err := b.List(ctx, 2); err != nil {
		t.Fatalf("fast list: %v", err)
	}
	close(slow)

	if err := <-staleErr; !errors.Is(err, ErrStale) {
		t.Fatalf("slow list err = %v, want ErrStale", err)
	}
	if len(view.list) != 2 || view.list[0].CommentText != "new" {
		t.Errorf("region = %v, want the newer list", view.list)
	}
	if got := b.Comments(); len(got) != 2 {
		t.Errorf("Comments() len = %d, want 2", len(got))
	}
}

func TestDeleteAllAwaitsThenReloads(t *testing.T) {
	api := &fakeAPI{comments: sample("a", "b")}
	view := &recordingView{}
	b := New(api, view)
	ctx := context.Background()

	if err := b.List(ctx, 5); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := b.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	if api.deleteCount() != 1 {
		t.Errorf("deletes = %d, want 1", api.deleteCount())
	}
	if view.reloads != 1 {
		t.Errorf("reloads = %d, want 1", view.reloads)
	}
	if b.DeleteControlVisible() {
		t.Error("expected session state cleared after reload")
	}
}

func TestDeleteAllReloadsWhenEmpty(t *testing.T) {
	api := &fakeAPI{}
	view := &recordingView{}

	if err := New(api, view).DeleteAll(context.Background()); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if api.deleteCount() != 1 || view.reloads != 1 {
		t.Errorf("deletes = %d, reloads = %d, want 1 and 1", api.deleteCount(), view.reloads)
	}
}

func TestDeleteAllReloadsOnError(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("boom")}
	view := &recordingView{}

	err := New(api, view).DeleteAll(context.Background())
	if !errors.Is(err, api.deleteErr) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if view.reloads != 1 {
		t.Errorf("reloads = %d, want 1", view.reloads)
	}
}

func TestDeleteAllFireAndForget(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{comments: sample("a"), gate: gate}
	view := &recordingView{}
	b := New(api, view, WithFireAndForgetDelete())

	if err := b.DeleteAll(context.Background()); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	if view.reloads != 1 {
		t.Errorf("reloads = %d, want 1 before delete resolved", view.reloads)
	}
	if api.deleteCount() != 0 {
		t.Error("expected delete still pending")
	}

	close(gate)
	b.Wait()
	if api.deleteCount() != 1 {
		t.Errorf("deletes = %d, want 1", api.deleteCount())
	}
}

func TestListIssuedBeforeReloadIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	api := &fakeAPI{
		listGates:  map[int]chan struct{}{5: slow},
		listResult: map[int][]*comment.Comment{5: sample("old")},
	}
	view := &recordingView{}
	b := New(api, view)
	ctx := context.Background()

	listErr := make(chan error, 1)
	go func() { listErr <- b.List(ctx, 5) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		api.mu.Lock()
		issued := len(api.counts)
		api.mu.Unlock()
		if issued == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("list request never issued")
		}
		time.Sleep(time.Millisecond)
	}

	if err := b.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	close(slow)

	if err := <-listErr; !errors.Is(err, ErrStale) {
		t.Fatalf("list err = %v, want ErrStale", err)
	}
	if view.rendered != 0 {
		t.Errorf("rendered %d times after reload, want 0", view.rendered)
	}
	if b.DeleteControlVisible() || view.deleteShown {
		t.Error("delete control shown by a list from before the reload")
	}

	// A list issued after the reload is applied normally.
	api.mu.Lock()
	api.listResult = nil
	api.comments = sample("fresh")
	api.mu.Unlock()
	if err := b.List(ctx, 1); err != nil {
		t.Fatalf("list after reload: %v", err)
	}
	if !b.DeleteControlVisible() || len(view.list) != 1 {
		t.Errorf("list after reload not applied: %v", view.list)
	}
}
