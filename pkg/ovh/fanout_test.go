package ovh

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	mu    sync.Mutex
	calls []string

	get func(path string, out any) error
}

func (f *fakeCaller) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCaller) Get(_ context.Context, path string, out any) error {
	f.record("GET " + path)
	return f.get(path, out)
}

func (f *fakeCaller) Post(_ context.Context, path string, _, _ any) error {
	f.record("POST " + path)
	return nil
}

func (f *fakeCaller) Put(_ context.Context, path string, _, _ any) error {
	f.record("PUT " + path)
	return nil
}

func (f *fakeCaller) Delete(_ context.Context, path string) error {
	f.record("DELETE " + path)
	return nil
}

func TestFetchDetailsPreservesOrder(t *testing.T) {
	caller := &fakeCaller{
		get: func(path string, out any) error {
			*(out.(*string)) = "detail of " + path
			return nil
		},
	}

	ids := []int64{7, 3, 12, 3}
	details, err := FetchDetails[int64, string](t.Context(), caller, ids, func(id int64) string {
		return fmt.Sprintf("dedicated/server/%d", id)
	})
	require.NoError(t, err)

	expected := []string{
		"detail of dedicated/server/7",
		"detail of dedicated/server/3",
		"detail of dedicated/server/12",
		"detail of dedicated/server/3",
	}
	assert.Equal(t, expected, details)
	assert.Len(t, caller.calls, len(ids))
}

func TestFetchDetailsEmptyInput(t *testing.T) {
	caller := &fakeCaller{get: func(string, any) error {
		t.Fatal("no call expected")
		return nil
	}}

	details, err := FetchDetails[string, string](t.Context(), caller, nil, func(id string) string { return id })
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestFetchDetailsPropagatesErrors(t *testing.T) {
	caller := &fakeCaller{
		get: func(path string, out any) error {
			if path == "cloud/project/broken" {
				return fmt.Errorf("boom")
			}
			return nil
		},
	}

	ids := []string{"ok", "broken", "ok"}
	_, err := FetchDetails[string, struct{}](t.Context(), caller, ids, func(id string) string {
		return "cloud/project/" + id
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
