package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ning0612/drawfolders/internal/adapter/local"
	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/testutil"
)

func newTestEngine() *Engine {
	return New(local.New(), WithTimeout(5*time.Second))
}

func drawingNames(drawings []domain.DrawingFolder) []string {
	names := make([]string, 0, len(drawings))
	for _, d := range drawings {
		names = append(names, d.Name)
	}
	return names
}

func TestListClients_Coded(t *testing.T) {
	root := testutil.MakeTree(t,
		"045 - Acme Corp",
		"123-Beta",
		"  200 -  Gamma Ltda",
		"Laser",
		"12 - Short",
	)
	testutil.CreateTestFile(t, root, "999 - File Not Folder", nil)

	clients, err := newTestEngine().ListClients(context.Background(), root, domain.NamingCoded)
	require.NoError(t, err)
	SortClients(clients)

	want := []domain.ClientFolder{
		{Code: "045", DisplayName: "Acme Corp", Name: "045 - Acme Corp", Path: filepath.Join(root, "045 - Acme Corp")},
		{Code: "123", DisplayName: "Beta", Name: "123-Beta", Path: filepath.Join(root, "123-Beta")},
		{Code: "200", DisplayName: "Gamma Ltda", Name: "  200 -  Gamma Ltda", Path: filepath.Join(root, "  200 -  Gamma Ltda")},
	}
	if diff := cmp.Diff(want, clients); diff != "" {
		t.Errorf("ListClients() mismatch (-want +got):\n%s", diff)
	}
}

func TestListClients_Flat(t *testing.T) {
	root := testutil.MakeTree(t, "Acme", "045 - Beta")

	clients, err := newTestEngine().ListClients(context.Background(), root, domain.NamingFlat)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	for _, c := range clients {
		assert.Empty(t, c.Code)
		assert.Equal(t, c.Name, c.DisplayName)
		assert.NotEmpty(t, c.DisplayName)
	}
}

func TestListClients_Unavailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "offline-share")

	_, err := newTestEngine().ListClients(context.Background(), missing, domain.NamingCoded)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var dirErr *domain.DirectoryError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, missing, dirErr.Path)
}

func TestLatestDrawing_NumericOrder(t *testing.T) {
	client := testutil.MakeTree(t, "123-0009", "123-0010", "123-0002")
	e := newTestEngine()

	drawings, err := e.ListDrawings(context.Background(), client)
	require.NoError(t, err)

	latest, ok := LatestDrawing(drawings)
	require.True(t, ok)
	assert.Equal(t, "123-0010", latest.Name)
	assert.Equal(t, 10, latest.Sequence)

	SortDrawings(drawings)
	assert.Equal(t, []string{"123-0002", "123-0009", "123-0010"}, drawingNames(drawings))
}

func TestLatestDrawing_ComparesCodeFirst(t *testing.T) {
	drawings := []domain.DrawingFolder{
		{Code: "124", Sequence: 1, Name: "124-0001"},
		{Code: "123", Sequence: 9999, Name: "123-9999"},
	}
	latest, ok := LatestDrawing(drawings)
	require.True(t, ok)
	assert.Equal(t, "124-0001", latest.Name)
}

func TestLatestDrawing_Empty(t *testing.T) {
	_, ok := LatestDrawing(nil)
	assert.False(t, ok)
}

func TestLatestRevision(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want string
	}{
		{"zero to nine", []string{"Rev-00", "Rev-01", "Rev-02", "Rev-03", "Rev-04", "Rev-05", "Rev-06", "Rev-07", "Rev-08", "Rev-09"}, "Rev-09"},
		{"nine and ten", []string{"Rev-09", "Rev-10"}, "Rev-10"},
		{"ignores others", []string{"Rev-01", "Rev-3", "rev-50", "old"}, "Rev-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drawing := testutil.MakeTree(t, tt.dirs...)
			revisions, err := newTestEngine().ListRevisions(context.Background(), drawing)
			require.NoError(t, err)

			latest, ok := LatestRevision(revisions)
			require.True(t, ok)
			assert.Equal(t, tt.want, latest.Name)
		})
	}

	_, ok := LatestRevision(nil)
	assert.False(t, ok)
}

func TestSortRevisions(t *testing.T) {
	revs := []domain.RevisionFolder{{Number: 10}, {Number: 2}, {Number: 9}}
	SortRevisions(revs)
	assert.Equal(t, []int{2, 9, 10}, []int{revs[0].Number, revs[1].Number, revs[2].Number})
}

func TestNextDrawingNumber(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want int
	}{
		{"empty client", nil, 1},
		{"single drawing", []string{"123-0007"}, 8},
		{"malformed sibling ignored", []string{"123-0007", "notes", "123-99999", "Rev-00"}, 8},
		{"max across codes", []string{"000-0003", "123-0002"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutil.MakeTree(t, tt.dirs...)
			got, err := newTestEngine().NextDrawingNumber(context.Background(), client)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListDrawings_ExcludesMalformed(t *testing.T) {
	client := testutil.MakeTree(t, "123-0001", "123-0002", "notes")
	testutil.CreateTestFile(t, client, "123-0003", []byte("a file, not a folder"))

	drawings, err := newTestEngine().ListDrawings(context.Background(), client)
	require.NoError(t, err)
	SortDrawings(drawings)
	assert.Equal(t, []string{"123-0001", "123-0002"}, drawingNames(drawings))
}

func TestResolveOpenTarget(t *testing.T) {
	root := testutil.MakeTree(t, "123-0001", "123-0002/Rev-00", "123-0002/Rev-01")
	e := newTestEngine()
	ctx := context.Background()

	bare := filepath.Join(root, "123-0001")
	got, err := e.ResolveOpenTarget(ctx, bare)
	require.NoError(t, err)
	assert.Equal(t, bare, got)

	revised := filepath.Join(root, "123-0002")
	got, err = e.ResolveOpenTarget(ctx, revised)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(revised, "Rev-01"), got)
}

func TestLatestOpenTarget(t *testing.T) {
	client := testutil.MakeTree(t, "123-0009/Rev-00", "123-0010/Rev-00", "123-0010/Rev-02")
	e := newTestEngine()

	target, latest, err := e.LatestOpenTarget(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "123-0010", latest.Name)
	assert.Equal(t, filepath.Join(client, "123-0010", "Rev-02"), target)

	empty := testutil.MakeTree(t, "notes")
	_, _, err = e.LatestOpenTarget(context.Background(), empty)
	assert.ErrorIs(t, err, domain.ErrNoDrawings)
}

// blockingFS never answers List until released
type blockingFS struct {
	fakeFS
	release chan struct{}
}

func (b *blockingFS) List(ctx context.Context, path string) ([]domain.FileInfo, error) {
	select {
	case <-b.release:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestListClients_Timeout(t *testing.T) {
	fs := &blockingFS{release: make(chan struct{})}
	defer close(fs.release)

	e := New(fs, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := e.ListClients(context.Background(), "/unreachable", domain.NamingCoded)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestListDrawings_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().ListDrawings(ctx, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestListings_FollowLinkedFolders(t *testing.T) {
	base := testutil.MakeTree(t, "root/123 - Acme/123-0001", "elsewhere/123-0002", "archive/124 - Linked/124-0005")
	root := filepath.Join(base, "root")
	client := filepath.Join(root, "123 - Acme")

	testutil.Symlink(t, filepath.Join(base, "elsewhere", "123-0002"), filepath.Join(client, "123-0002"))
	testutil.Symlink(t, filepath.Join(base, "archive", "124 - Linked"), filepath.Join(root, "124 - Linked"))

	e := newTestEngine()
	ctx := context.Background()

	drawings, err := e.ListDrawings(ctx, client)
	require.NoError(t, err)
	SortDrawings(drawings)
	assert.Equal(t, []string{"123-0001", "123-0002"}, drawingNames(drawings))

	latest, ok := LatestDrawing(drawings)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(client, "123-0002"), latest.Path)

	next, err := e.NextDrawingNumber(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	clients, err := e.ListClients(ctx, root, domain.NamingCoded)
	require.NoError(t, err)
	SortClients(clients)
	require.Len(t, clients, 2)
	assert.Equal(t, "124 - Linked", clients[1].Name)
	assert.Equal(t, filepath.Join(root, "124 - Linked"), clients[1].Path)
}
