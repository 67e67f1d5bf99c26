package history

import (
	"strconv"
	"sync"
	"testing"

	"ai_content_generator/generator"
)

func result(i int, t generator.ContentType) generator.Result {
	return generator.Result{ID: strconv.Itoa(i), Type: t, Content: "c" + strconv.Itoa(i)}
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore(3)
	for i := 1; i <= 5; i++ {
		s.Add(result(i, generator.TypeBio))
	}

	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	got := s.List()
	want := []string{"5", "4", "3"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestStore_DefaultLimit(t *testing.T) {
	s := NewStore(0)
	if s.Limit() != DefaultLimit {
		t.Fatalf("Limit() = %d, want %d", s.Limit(), DefaultLimit)
	}
	for i := 0; i < DefaultLimit+25; i++ {
		s.Add(result(i, generator.TypeProject))
	}
	if s.Len() != DefaultLimit {
		t.Errorf("Len() = %d, want %d", s.Len(), DefaultLimit)
	}
	if first := s.List()[0].ID; first != strconv.Itoa(DefaultLimit+24) {
		t.Errorf("most recent = %q", first)
	}
}

func TestStore_ListDoesNotMutate(t *testing.T) {
	s := NewStore(10)
	s.Add(result(1, generator.TypeBio))
	s.Add(result(2, generator.TypeBio))

	first := s.List()
	second := s.List()
	if first[0].ID != "2" || second[0].ID != "2" {
		t.Errorf("repeated List() changed order: %q then %q", first[0].ID, second[0].ID)
	}
}

func TestStore_StatsSumToTotal(t *testing.T) {
	s := NewStore(4)
	types := []generator.ContentType{
		generator.TypeBio, generator.TypeProject, generator.TypeReflection,
		generator.TypeBio, generator.TypeProject, generator.TypeBio,
	}
	for i, ct := range types {
		s.Add(result(i, ct))
	}

	st := s.Stats()
	if st.Total != 4 {
		t.Fatalf("Total = %d, want 4", st.Total)
	}
	sum := 0
	for _, n := range st.ByType {
		sum += n
	}
	if sum != st.Total {
		t.Errorf("sum of ByType = %d, want %d", sum, st.Total)
	}
	if st.ByType[generator.TypeBio] != 2 || st.ByType[generator.TypeReflection] != 1 {
		t.Errorf("ByType = %v", st.ByType)
	}
}

func TestStore_ConcurrentAdd(t *testing.T) {
	s := NewStore(50)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(result(i, generator.TypeReflection))
		}(i)
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Errorf("Len() = %d, want 50", s.Len())
	}
}
