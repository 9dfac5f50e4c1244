package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir(), "http://localhost:8000/media/")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "resumes/cv.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf"))

	exists, err := store.Exists(ctx, "resumes/cv.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := store.Size(ctx, "resumes/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	rc, err := store.Open(ctx, "resumes/cv.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))

	assert.Equal(t, "http://localhost:8000/media/resumes/cv.pdf", store.URL("resumes/cv.pdf"))

	require.NoError(t, store.Delete(ctx, "resumes/cv.pdf"))
	assert.ErrorIs(t, store.Delete(ctx, "resumes/cv.pdf"), ErrNotFound)
	_, err = store.Open(ctx, "resumes/cv.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err = store.Exists(ctx, "resumes/cv.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocal_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	err = store.Save(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = store.Open(ctx, "images/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"projects/a.png":   "projects/a.png",
		"/projects//a.png": "projects/a.png",
		`logos\brand.svg`:  "logos/brand.svg",
		"./x/./y.txt":      "x/y.txt",
	}
	for in, want := range cases {
		got, err := CleanPath(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "/", "..", "a/../../b"} {
		_, err := CleanPath(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestObjectName(t *testing.T) {
	name := ObjectName("/resumes/", "My Résumé 2024.PDF")
	assert.True(t, strings.HasPrefix(name, "resumes/"), name)
	assert.True(t, strings.HasSuffix(name, "-my-resume-2024.pdf"), name)

	assert.NotEqual(t, ObjectName("", "a.txt"), ObjectName("", "a.txt"))
	assert.False(t, strings.Contains(ObjectName("", "a.txt"), "/"))
}

func TestAbsoluteURL(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost:8000/media/")
	require.NoError(t, err)

	assert.Equal(t, "", AbsoluteURL(store, ""))
	assert.Equal(t, "https://cdn.example.com/a.png", AbsoluteURL(store, "https://cdn.example.com/a.png"))
	assert.Equal(t, "http://localhost:8000/media/projects/a.png", AbsoluteURL(store, "projects/a.png"))
	assert.Equal(t, "http://localhost:8000/media/projects/a.png", AbsoluteURL(store, "/projects/a.png"))
}
