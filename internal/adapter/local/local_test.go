package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/testutil"
)

func TestAdapter_List(t *testing.T) {
	dir := testutil.MakeTree(t, "123-0001/Rev-00", "123-0002", "notes")
	testutil.CreateTestFile(t, dir, "readme.txt", []byte("hello"))

	a := New()
	entries, err := a.List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var names []string
	dirs := 0
	for _, e := range entries {
		names = append(names, e.Name)
		if e.IsDir() {
			dirs++
		}
		if e.Path != filepath.Join(dir, e.Name) {
			t.Errorf("entry %s has path %s", e.Name, e.Path)
		}
	}
	sort.Strings(names)

	want := []string{"123-0001", "123-0002", "notes", "readme.txt"}
	if len(names) != len(want) {
		t.Fatalf("List() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
	if dirs != 3 {
		t.Errorf("expected 3 directories, got %d", dirs)
	}
}

func TestAdapter_ListErrors(t *testing.T) {
	dir := t.TempDir()
	file := testutil.CreateTestFile(t, dir, "plain.txt", nil)
	a := New()

	if _, err := a.List(context.Background(), filepath.Join(dir, "missing")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("List(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := a.List(context.Background(), file); !errors.Is(err, domain.ErrNotDirectory) {
		t.Errorf("List(file) error = %v, want ErrNotDirectory", err)
	}
}

func TestAdapter_Mkdir(t *testing.T) {
	dir := t.TempDir()
	a := New()
	target := filepath.Join(dir, "a", "b", "c")

	if err := a.Mkdir(context.Background(), target); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	// Second call is a no-op
	if err := a.Mkdir(context.Background(), target); err != nil {
		t.Fatalf("second Mkdir() error = %v", err)
	}

	exists, err := a.Exists(context.Background(), target)
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v; want true, nil", exists, err)
	}
}

func TestAdapter_MkdirExclusive(t *testing.T) {
	dir := t.TempDir()
	a := New()
	target := filepath.Join(dir, "123-0001")

	if err := a.MkdirExclusive(context.Background(), target); err != nil {
		t.Fatalf("MkdirExclusive() error = %v", err)
	}
	if err := a.MkdirExclusive(context.Background(), target); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("second MkdirExclusive() error = %v, want ErrAlreadyExists", err)
	}
	if err := a.MkdirExclusive(context.Background(), filepath.Join(dir, "x", "y")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MkdirExclusive(missing parent) error = %v, want ErrNotFound", err)
	}
}

func TestAdapter_Rename(t *testing.T) {
	dir := testutil.MakeTree(t, "05-03-2024/inner", "2024-03-06")
	a := New()
	ctx := context.Background()

	from := filepath.Join(dir, "05-03-2024")
	to := filepath.Join(dir, "2024-03-05")
	if err := a.Rename(ctx, from, to); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(to, "inner")); err != nil {
		t.Errorf("renamed folder lost its contents: %v", err)
	}

	// Destination exists
	if err := a.Rename(ctx, to, filepath.Join(dir, "2024-03-06")); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("Rename() onto existing error = %v, want ErrAlreadyExists", err)
	}
}

func TestAdapter_Stat(t *testing.T) {
	dir := testutil.MakeTree(t, "123-0001")
	a := New()

	info, err := a.Stat(context.Background(), filepath.Join(dir, "123-0001"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() || info.Name != "123-0001" {
		t.Errorf("Stat() = %+v", info)
	}

	exists, err := a.Exists(context.Background(), filepath.Join(dir, "nope"))
	if err != nil || exists {
		t.Errorf("Exists(nope) = %v, %v; want false, nil", exists, err)
	}
}

func TestCall_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := call(ctx, func() (int, error) {
		<-release
		return 1, nil
	})
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("call() error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call() returned after %v, expected prompt timeout", elapsed)
	}
}

func TestCall_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	_, err := call(ctx, func() (int, error) {
		ran = true
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("call() error = %v, want context.Canceled", err)
	}
	if ran {
		t.Error("fn should not run on a cancelled context")
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not exist", os.ErrNotExist, domain.ErrNotFound},
		{"permission", os.ErrPermission, domain.ErrPermissionDenied},
		{"exist", os.ErrExist, domain.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(&os.PathError{Op: "mkdir", Path: "/x", Err: tt.err})
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError() = %v, want %v", got, tt.want)
			}
		})
	}

	if mapError(nil) != nil {
		t.Error("mapError(nil) should be nil")
	}
}

func TestAdapter_ListFollowsLinks(t *testing.T) {
	base := testutil.MakeTree(t, "client/123-0001", "elsewhere/123-0002")
	client := filepath.Join(base, "client")
	notes := testutil.CreateTestFile(t, base, "notes.txt", []byte("notes"))

	testutil.Symlink(t, filepath.Join(base, "elsewhere", "123-0002"), filepath.Join(client, "123-0002"))
	testutil.Symlink(t, notes, filepath.Join(client, "notes-link"))
	testutil.Symlink(t, filepath.Join(base, "gone"), filepath.Join(client, "dangling"))

	entries, err := New().List(context.Background(), client)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	types := map[string]domain.FileType{}
	for _, e := range entries {
		types[e.Name] = e.Type
		if e.Path != filepath.Join(client, e.Name) {
			t.Errorf("entry %s has path %s, want the link path", e.Name, e.Path)
		}
	}

	want := map[string]domain.FileType{
		"123-0001":   domain.FileTypeDirectory,
		"123-0002":   domain.FileTypeDirectory,
		"notes-link": domain.FileTypeRegular,
		"dangling":   domain.FileTypeSymlink,
	}
	for name, typ := range want {
		got, ok := types[name]
		if !ok {
			t.Errorf("List() missing %s", name)
			continue
		}
		if got != typ {
			t.Errorf("%s type = %v, want %v", name, got, typ)
		}
	}
}
