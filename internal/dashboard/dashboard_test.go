package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/faculty-workload/internal/domain"
	"github.com/spec-kit/faculty-workload/internal/workload"
)

func sampleRecords() []domain.WorkloadRecord {
	return []domain.WorkloadRecord{
		{Faculty: "Jane Doe", Department: "CS", Subject: "Algorithms", DataType: domain.DataTypeReal, WorkloadScore: 12, Status: domain.StatusOverloaded},
		{Faculty: "Jane Doe", Department: "CS", Subject: "Databases", DataType: domain.DataTypeReal, WorkloadScore: 6, Status: domain.StatusOverloaded},
		{Faculty: "Sam Roe", Department: "Math", Subject: "Calculus", DataType: domain.DataTypeDemo, WorkloadScore: 9, Status: domain.StatusBalanced},
	}
}

func TestReduce(t *testing.T) {
	start := DefaultView()
	got := Reduce(start,
		SelectTab{Tab: TabHeatmap},
		SelectDepartment{Department: "CS"},
		SelectDataType{DataType: ""},
		Search{Term: "algo"},
	)

	assert.Equal(t, TabHeatmap, got.Tab)
	assert.Equal(t, workload.Criteria{Department: "CS", DataType: workload.All, SearchTerm: "algo"}, got.Criteria)
	assert.Equal(t, DefaultView(), start, "reduce must not mutate its input")

	reset := Reduce(got, ResetFilters{}, nil)
	assert.Equal(t, TabHeatmap, reset.Tab)
	assert.Equal(t, workload.DefaultCriteria(), reset.Criteria)
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabRecommendations, ParseTab(" Recommendations "))
	assert.Equal(t, TabOverview, ParseTab("settings"))
	assert.Equal(t, TabOverview, ParseTab(""))
}

func TestStoreDropsStaleResults(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	first, err := store.Begin(ctx)
	require.NoError(t, err)
	second, err := store.Begin(ctx)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	assert.True(t, store.Commit(second, sampleRecords()))
	assert.False(t, store.Fail(first, "slow failure"), "older generation must not overwrite")

	snap := store.Snapshot()
	assert.Equal(t, second, snap.Generation)
	assert.Empty(t, snap.Error)
	assert.Len(t, snap.Records, 3)
	assert.False(t, snap.Loading)
	assert.True(t, snap.Loaded())
}

func TestStoreFailClearsRecords(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	gen, _ := store.Begin(ctx)
	store.Commit(gen, sampleRecords())

	gen, _ = store.Begin(ctx)
	assert.True(t, store.Snapshot().Loading)
	assert.True(t, store.Fail(gen, "Network error: refused"))

	snap := store.Snapshot()
	assert.Equal(t, "Network error: refused", snap.Error)
	assert.Empty(t, snap.Records)
	assert.False(t, snap.Loaded())
}

type fixedSequence struct{ n uint64 }

func (f *fixedSequence) Next(context.Context) (uint64, error) { return f.n, nil }

type failingSequence struct{}

func (failingSequence) Next(context.Context) (uint64, error) { return 0, errors.New("redis down") }

func TestStoreKeepsGenerationsMonotonic(t *testing.T) {
	store := NewStore(&fixedSequence{n: 7})
	ctx := context.Background()

	a, _ := store.Begin(ctx)
	b, _ := store.Begin(ctx)
	assert.Equal(t, uint64(7), a)
	assert.Equal(t, uint64(8), b)

	_, err := NewStore(failingSequence{}).Begin(ctx)
	assert.Error(t, err)
}

func TestStoreConcurrentBegin(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	gens := make(chan uint64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen, err := store.Begin(ctx)
			assert.NoError(t, err)
			gens <- gen
		}()
	}
	wg.Wait()
	close(gens)

	committed := 0
	for gen := range gens {
		if store.Commit(gen, nil) {
			committed++
		}
	}
	assert.Equal(t, 1, committed)
	assert.Equal(t, uint64(50), store.Snapshot().Generation)
}

func TestBuildPage(t *testing.T) {
	load := LoadState{Records: sampleRecords(), Generation: 3, LoadedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}

	view := Reduce(DefaultView(), SelectDepartment{Department: "CS"})
	page := Build(view, load)

	assert.False(t, page.Loading)
	assert.Equal(t, []string{"CS", "Math"}, page.Departments)
	assert.Len(t, page.Records, 2)
	assert.Equal(t, 2, page.Overview.TotalFaculty)
	assert.Equal(t, 2, page.Overview.TotalDepartments)
	assert.Equal(t, 3, page.Overview.TotalSubjects)
	require.Len(t, page.Heatmap, 1)
	assert.Equal(t, 18.0, page.Heatmap[0].AvgWorkload)
	assert.Equal(t, workload.TierHigh, page.Heatmap[0].Tier)
	assert.Equal(t, []string{"Jane Doe (CS)"}, page.Chart.Labels)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "#ffcdd2", page.Rows[0].RowColor)
}

func TestBuildPageBeforeFirstLoad(t *testing.T) {
	page := Build(DefaultView(), LoadState{})

	assert.True(t, page.Loading)
	assert.True(t, page.Chart.Empty)
	assert.False(t, page.Overview.HasData())
}

func TestWithFallback(t *testing.T) {
	var seen error
	seq := WithFallback(failingSequence{}, func(err error) { seen = err })
	store := NewStore(seq)

	gen, err := store.Begin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	assert.EqualError(t, seen, "redis down")
}
