package profiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/types"
)

func newTestService(t *testing.T) (*Service, *storage.Memory) {
	store := storage.NewMemory()
	s := NewService(store, zaptest.NewLogger(t))
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s, store
}

func janeCV() *types.CVData {
	return &types.CVData{
		PersonalInfo: types.PersonalInfo{Name: types.Name{First: "Jane", Last: "Doe"}},
		Experience:   []types.Experience{{Employer: "Acme", Title: "Engineer", StartDate: "2020"}},
		Skills:       []types.Skill{{Name: "Go"}},
	}
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)

	p, err := s.Create(ctx, "", janeCV(), "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Owner)
	assert.Equal(t, 1, p.Version)
	assert.Equal(t, "manual", p.Source)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.Data.PersonalInfo.Name.Full)
	assert.Equal(t, "Acme", got.Data.Experience[0].Employer)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"profiles/" + p.ID + ".json", "profiles/" + p.ID + "/v1.json"}, keys)
}

func TestService_GetMissing(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Ids that cannot be keys are treated as missing
	_, err = s.Get(context.Background(), "../etc/passwd")
	assert.ErrorAs(t, err, &nf)
}

func TestService_UpdateKeepsHistory(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	p, err := s.Create(ctx, "jane", janeCV(), "manual")
	require.NoError(t, err)

	next := janeCV()
	next.Experience[0].StartDate = "2019"
	next.Skills = append(next.Skills, types.Skill{Name: "Rust"})
	updated, err := s.Update(ctx, p.ID, next, "added rust")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, p.Created, updated.Created)
	assert.True(t, updated.Updated.After(p.Updated))
	assert.NotEmpty(t, updated.Changes)

	versions, err := s.Versions(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)

	v1, err := s.GetVersion(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "2020", v1.Data.Experience[0].StartDate)

	cur, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Version)
	assert.Equal(t, "2019", cur.Data.Experience[0].StartDate)

	_, err = s.Update(ctx, "00000000-0000-0000-0000-000000000000", next, "x")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	a, err := s.Create(ctx, "zed", janeCV(), "")
	require.NoError(t, err)
	b, err := s.Create(ctx, "amy", janeCV(), "")
	require.NoError(t, err)
	_, err = s.Update(ctx, b.ID, janeCV(), "again")
	require.NoError(t, err)
	// Unrelated keys are ignored
	require.NoError(t, store.Write(ctx, "output/cv.pdf", []byte("%PDF-")))

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "amy", list[0].Owner)
	assert.Equal(t, 2, list[0].Version)
	assert.Equal(t, "zed", list[1].Owner)

	require.NoError(t, s.Delete(ctx, b.ID))
	_, err = s.Get(ctx, b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"output/cv.pdf", "profiles/" + a.ID + ".json", "profiles/" + a.ID + "/v1.json"}, keys)

	assert.ErrorIs(t, s.Delete(ctx, b.ID), storage.ErrNotFound)
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	path := filepath.Join(t.TempDir(), "jane.md")
	require.NoError(t, os.WriteFile(path, []byte("# Jane Doe\njane@example.com\n## Experience\n- Engineer at Acme (2020-2023)\n## Hobbies\n- Chess\n"), 0o644))

	p, warnings, err := s.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Owner)
	assert.Equal(t, "import:jane.md", p.Source)
	require.Len(t, p.Data.Experience, 1)
	assert.NotEmpty(t, warnings)

	_, _, err = s.Import(ctx, filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestService_RejectsInvalidData(t *testing.T) {
	s, _ := newTestService(t)
	cv := janeCV()
	cv.Experience[0].HoursPerWeek = 500

	_, err := s.Create(context.Background(), "", cv, "")
	assert.ErrorContains(t, err, "failed validation")

	_, err = s.Create(context.Background(), "", nil, "")
	assert.Error(t, err)
}
