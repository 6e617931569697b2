package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tradepath/internal/store"
)

// failingKV fails every Save and returns loadErr from Load.
type failingKV struct {
	loadErr error
}

func (f *failingKV) Load(context.Context, string) ([]byte, error) { return nil, f.loadErr }
func (f *failingKV) Save(context.Context, string, []byte) error  { return errors.New("disk full") }
func (f *failingKV) Delete(context.Context, string) error        { return nil }

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewService(context.Background(), Options{KV: mem, Journal: mem}), mem
}

func TestService_StartsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	assert.False(t, svc.HasAnswers())
	assert.Equal(t, 0, svc.Scoreboard().Total)
}

func TestService_SetCriterionPersists(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	_, err := svc.SetCriterion(ctx, CategoryKnowledge, "trend_sideway", true)
	require.NoError(t, err)
	got, err := svc.SetCriterion(ctx, CategorySystem, "fixed_strategy", true)
	require.NoError(t, err)
	assert.True(t, got.Get(CategorySystem, "fixed_strategy"))

	sb := svc.Scoreboard()
	assert.Equal(t, 8, sb.Total)
	assert.Equal(t, "Mới (0–35)", sb.Band.Label())

	blob, err := mem.Load(ctx, store.KeyAssessmentAnswers)
	require.NoError(t, err)
	assert.JSONEq(t, `{"knowledge":{"trend_sideway":true},"system":{"fixed_strategy":true}}`, string(blob))

	// A fresh service over the same store sees the same state.
	reloaded := NewService(ctx, Options{KV: mem})
	assert.Equal(t, svc.Answers(), reloaded.Answers())
	assert.Equal(t, 8, reloaded.Scoreboard().Total)

	entries, err := mem.Query(ctx, store.QueryOpts{Kind: store.KindCriterionSet})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "system/fixed_strategy", entries[0].Subject)
	assert.Equal(t, "true", entries[0].Value)
}

func TestService_SetCriterionIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.SetCriterion(ctx, CategoryRisk, "always_stop_loss", true)
	require.NoError(t, err)
	second, err := svc.SetCriterion(ctx, CategoryRisk, "always_stop_loss", true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, svc.Scoreboard().Total)
}

func TestService_UnknownCriterion(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	_, err := svc.SetCriterion(ctx, CategoryRisk, "moon_phase", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCriterion)

	var uce *UnknownCriterionError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, CategoryRisk, uce.Category)
	assert.Equal(t, "moon_phase", uce.Criterion)

	blob, err := mem.Load(ctx, store.KeyAssessmentAnswers)
	require.NoError(t, err)
	assert.Nil(t, blob, "rejected call must not write")
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	_, err := svc.SetCriterion(ctx, CategoryRisk, "always_stop_loss", true)
	require.NoError(t, err)
	require.True(t, svc.HasAnswers())

	got, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.False(t, svc.HasAnswers())
	assert.Equal(t, 0, svc.Scoreboard().Total)

	blob, err := mem.Load(ctx, store.KeyAssessmentAnswers)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(blob))
}

func TestService_MalformedBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Save(ctx, store.KeyAssessmentAnswers, []byte(`not json`)))

	svc := NewService(ctx, Options{KV: mem})
	assert.False(t, svc.HasAnswers())
	assert.Equal(t, 0, svc.Scoreboard().Total)
}

func TestService_LoadErrorStartsEmpty(t *testing.T) {
	svc := NewService(context.Background(), Options{KV: &failingKV{loadErr: errors.New("io")}})
	assert.False(t, svc.HasAnswers())
}

func TestService_SaveErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, Options{KV: &failingKV{}})

	_, err := svc.SetCriterion(ctx, CategoryRisk, "always_stop_loss", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist assessment state")
	assert.False(t, svc.HasAnswers(), "failed write must not change in-memory state")

	_, err = svc.Reset(ctx)
	assert.Error(t, err)
}

func TestService_KeepsUnrecognizedKeysOnSave(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Save(ctx, store.KeyAssessmentAnswers,
		[]byte(`{"macro":{"rates":true},"risk":{"always_stop_loss":true,"hedging":true}}`)))

	svc := NewService(ctx, Options{KV: mem})
	assert.Equal(t, 4, svc.Scoreboard().Total)

	_, err := svc.SetCriterion(ctx, CategoryKnowledge, "trend_sideway", true)
	require.NoError(t, err)

	blob, err := mem.Load(ctx, store.KeyAssessmentAnswers)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"macro":{"rates":true},"risk":{"always_stop_loss":true,"hedging":true},"knowledge":{"trend_sideway":true}}`,
		string(blob))

	_, err = svc.Reset(ctx)
	require.NoError(t, err)
	blob, err = mem.Load(ctx, store.KeyAssessmentAnswers)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(blob))
}
