package game

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeStore struct {
	best  map[string]int
	saves []int
	fail  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{best: map[string]int{}}
}

func (f *fakeStore) Load(player string) int {
	return f.best[player]
}

func (f *fakeStore) Save(player string, score int) error {
	if f.fail {
		return errors.New("storage down")
	}
	f.best[player] = score
	f.saves = append(f.saves, score)
	return nil
}

func newTestSession() *Session {
	return NewSession("tester", 42, nil)
}

func cellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStartInitialPose(t *testing.T) {
	s := newTestSession()
	s.Start()

	snap := s.Snapshot()
	want := []Cell{{4, 9}, {3, 9}, {2, 9}}
	if !cellsEqual(snap.Snake, want) {
		t.Fatalf("Initial snake = %v, want %v", snap.Snake, want)
	}
	if snap.Direction != Right {
		t.Errorf("Initial direction = %v, want %v", snap.Direction, Right)
	}
	if !snap.Running {
		t.Error("Session should be running after Start")
	}
	if snap.Score != 0 {
		t.Errorf("Initial score = %d, want 0", snap.Score)
	}
	for _, c := range snap.Snake {
		if c == snap.Food {
			t.Errorf("Food spawned on snake cell %v", c)
		}
	}
}

func TestTickAdvancesOneCell(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.food = Cell{X: 0, Y: 0}

	s.Tick()

	snap := s.Snapshot()
	want := []Cell{{5, 9}, {4, 9}, {3, 9}}
	if !cellsEqual(snap.Snake, want) {
		t.Fatalf("After one tick snake = %v, want %v", snap.Snake, want)
	}
	if snap.Score != 0 {
		t.Errorf("Score = %d, want 0", snap.Score)
	}
}

func TestEatFoodGrowsByOne(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.food = Cell{X: 5, Y: 9}

	s.Tick()

	snap := s.Snapshot()
	want := []Cell{{5, 9}, {4, 9}, {3, 9}, {2, 9}}
	if !cellsEqual(snap.Snake, want) {
		t.Fatalf("After eating snake = %v, want %v", snap.Snake, want)
	}
	if snap.Score != 1 {
		t.Errorf("Score = %d, want 1", snap.Score)
	}
	for _, c := range snap.Snake {
		if c == snap.Food {
			t.Errorf("Respawned food %v lands on snake", snap.Food)
		}
	}
}

func TestReversalRejected(t *testing.T) {
	s := newTestSession()
	s.Start()

	s.SetDirection(Left)
	if s.pending != Right {
		t.Fatalf("Reversal changed pending direction to %v", s.pending)
	}

	s.food = Cell{X: 0, Y: 0}
	s.Tick()
	head, _ := s.Snapshot().Head()
	if (head != Cell{X: 5, Y: 9}) {
		t.Errorf("Head moved to %v, reversal should have been ignored", head)
	}
}

func TestNonUnitVectorsRejected(t *testing.T) {
	s := newTestSession()
	s.Start()

	for _, d := range []Direction{{Dx: 2, Dy: 0}, {Dx: 1, Dy: 1}, {}, {Dx: 0, Dy: -3}} {
		s.SetDirection(d)
		if s.pending != Right {
			t.Errorf("Illegal vector %v changed pending direction to %v", d, s.pending)
		}
	}
}

func TestDirectionTakesEffectNextTick(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.food = Cell{X: 0, Y: 0}

	s.SetDirection(Up)
	if s.direction != Right {
		t.Fatal("SetDirection must not change the committed direction immediately")
	}

	s.Tick()
	head, _ := s.Snapshot().Head()
	if (head != Cell{X: 4, Y: 8}) {
		t.Errorf("Head = %v, want (4,8) after turning up", head)
	}
}

func TestBurstyInputLastOneWins(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.food = Cell{X: 0, Y: 0}

	s.SetDirection(Up)
	s.SetDirection(Down)

	s.Tick()
	head, _ := s.Snapshot().Head()
	if (head != Cell{X: 4, Y: 10}) {
		t.Errorf("Head = %v, want (4,10): last input before the tick wins", head)
	}
}

func TestToroidalWrap(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.snake = []Cell{{17, 9}, {16, 9}, {15, 9}}
	s.food = Cell{X: 0, Y: 0}

	s.Tick()

	snap := s.Snapshot()
	head, _ := snap.Head()
	if (head != Cell{X: 0, Y: 9}) {
		t.Fatalf("Head = %v, want (0,9) after wrapping the right edge", head)
	}
	if !snap.Running {
		t.Error("Wrapping the edge must not end the game")
	}

	s.snake = []Cell{{5, 0}, {5, 1}, {5, 2}}
	s.direction = Up
	s.pending = Up
	s.Tick()
	head, _ = s.Snapshot().Head()
	if (head != Cell{X: 5, Y: 17}) {
		t.Errorf("Head = %v, want (5,17) after wrapping the top edge", head)
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	s := newTestSession()
	s.Start()
	// Head at (4,9) moving right runs into the body cell (5,9).
	s.snake = []Cell{{4, 9}, {4, 8}, {5, 8}, {5, 9}, {5, 10}}
	s.food = Cell{X: 0, Y: 0}

	s.Tick()

	snap := s.Snapshot()
	if snap.Running {
		t.Fatal("Self-collision must end the session")
	}
	if len(snap.Snake) != 5 {
		t.Errorf("Terminal tick mutated the snake: %v", snap.Snake)
	}
}

func TestVacatedTailCellStillCollides(t *testing.T) {
	s := newTestSession()
	s.Start()
	// Head at (4,9) moving right targets (5,9), the tail cell that would
	// be vacated this very tick. The check runs before tail removal.
	s.snake = []Cell{{4, 9}, {4, 10}, {5, 10}, {5, 9}}
	s.food = Cell{X: 0, Y: 0}

	s.Tick()

	if s.Snapshot().Running {
		t.Fatal("Moving onto the vacating tail cell must still end the game")
	}
}

func TestTerminalStateIsAbsorbing(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.snake = []Cell{{4, 9}, {4, 8}, {5, 8}, {5, 9}, {5, 10}}
	s.food = Cell{X: 0, Y: 0}
	s.Tick()

	dead := s.Snapshot()
	for i := 0; i < 5; i++ {
		s.Tick()
		s.SetDirection(Up)
	}
	after := s.Snapshot()
	if after.Running || !cellsEqual(dead.Snake, after.Snake) || dead.Score != after.Score {
		t.Fatal("Tick and SetDirection must be no-ops once terminal")
	}

	s.Start()
	fresh := s.Snapshot()
	if !fresh.Running || len(fresh.Snake) != InitialLength || fresh.Score != 0 {
		t.Errorf("Start did not produce a fresh session: %+v", fresh)
	}
}

func TestInvariantsOverManyTicks(t *testing.T) {
	s := newTestSession()
	s.Start()

	// Rotate clockwise every third tick; a clockwise turn can never be a
	// reversal, so every input is legal.
	clockwise := []Direction{Right, Down, Left, Up}
	turn := 0

	prevLen := len(s.snake)
	for i := 0; i < 500 && s.Snapshot().Running; i++ {
		if i%3 == 0 {
			turn = (turn + 1) % len(clockwise)
			s.SetDirection(clockwise[turn])
		}
		s.Tick()

		snap := s.Snapshot()
		seen := map[Cell]bool{}
		for _, c := range snap.Snake {
			if snap.Running && seen[c] {
				t.Fatalf("Tick %d: duplicate snake cell %v", i, c)
			}
			seen[c] = true
		}
		if snap.Running && seen[snap.Food] {
			t.Fatalf("Tick %d: food %v on snake", i, snap.Food)
		}
		growth := len(snap.Snake) - prevLen
		if snap.Running && (growth < 0 || growth > 1) {
			t.Fatalf("Tick %d: length changed by %d", i, growth)
		}
		prevLen = len(snap.Snake)
	}
}

func TestFoodSpawnPicksLastFreeCell(t *testing.T) {
	s := newTestSession()
	s.Start()

	var full []Cell
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if x == 17 && y == 17 {
				continue
			}
			full = append(full, Cell{X: x, Y: y})
		}
	}
	s.snake = full

	if !s.spawnFood() {
		t.Fatal("spawnFood must succeed with one free cell left")
	}
	if (s.food != Cell{X: 17, Y: 17}) {
		t.Errorf("Food = %v, want the only free cell (17,17)", s.food)
	}
}

func TestFoodSpawnFailsOnFullGrid(t *testing.T) {
	s := newTestSession()
	s.Start()

	var full []Cell
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			full = append(full, Cell{X: x, Y: y})
		}
	}
	s.snake = full

	if s.spawnFood() {
		t.Fatal("spawnFood must report a full grid")
	}
}

func TestBestScoreLoadedOnceAndSavedOnNewBest(t *testing.T) {
	store := newFakeStore()
	store.best["tester"] = 5

	s := NewSession("tester", 42, store)
	s.Start()
	if s.Snapshot().Best != 5 {
		t.Fatalf("Best = %d, want 5 loaded from store", s.Snapshot().Best)
	}

	s.food = Cell{X: 5, Y: 9}
	s.Tick()
	if len(store.saves) != 0 {
		t.Errorf("Score 1 below best 5 must not be persisted, got saves %v", store.saves)
	}

	store2 := newFakeStore()
	s2 := NewSession("tester", 42, store2)
	s2.Start()
	s2.food = Cell{X: 5, Y: 9}
	s2.Tick()
	if len(store2.saves) != 1 || store2.saves[0] != 1 {
		t.Errorf("New best must be persisted once, got saves %v", store2.saves)
	}
}

func TestStorageFailureDoesNotStopGame(t *testing.T) {
	store := newFakeStore()
	store.fail = true

	s := NewSession("tester", 42, store)
	s.Start()
	s.food = Cell{X: 5, Y: 9}
	s.Tick()

	snap := s.Snapshot()
	if !snap.Running {
		t.Fatal("Persist failure must not end the session")
	}
	if snap.Score != 1 || snap.Best != 1 {
		t.Errorf("Score/Best = %d/%d, want 1/1 despite storage failure", snap.Score, snap.Best)
	}
}

func TestObserverNotifications(t *testing.T) {
	s := newTestSession()
	updates := make(chan tea.Msg, 16)
	s.Subscribe(updates)

	s.Start()
	if msg := <-updates; msg != (RedrawMsg{}) {
		t.Fatalf("Start published %T, want RedrawMsg", msg)
	}

	s.food = Cell{X: 0, Y: 0}
	s.Tick()
	if msg := <-updates; msg != (RedrawMsg{}) {
		t.Fatalf("Tick published %T, want RedrawMsg", msg)
	}

	s.snake = []Cell{{4, 9}, {4, 8}, {5, 8}, {5, 9}, {5, 10}}
	s.Tick()
	msg := <-updates
	over, ok := msg.(GameOverMsg)
	if !ok {
		t.Fatalf("Terminal tick published %T, want GameOverMsg", msg)
	}
	if over.Score != 0 {
		t.Errorf("GameOverMsg.Score = %d, want 0", over.Score)
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	s := newTestSession()
	stuck := make(chan tea.Msg) // nobody reads
	s.Subscribe(stuck)

	s.Start()
	s.food = Cell{X: 0, Y: 0}
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	// Reaching here at all is the assertion.
	if !s.Snapshot().Running {
		t.Error("Session should still be running")
	}
}

func TestSnapshotIsIsolatedCopy(t *testing.T) {
	s := newTestSession()
	s.Start()

	snap := s.Snapshot()
	snap.Snake[0] = Cell{X: 0, Y: 0}

	head, _ := s.Snapshot().Head()
	if (head != Cell{X: 4, Y: 9}) {
		t.Error("Mutating a snapshot must not affect session state")
	}
}

func TestStepWrapArithmetic(t *testing.T) {
	cases := []struct {
		from Cell
		dir  Direction
		want Cell
	}{
		{Cell{GridSize - 1, 9}, Right, Cell{0, 9}},
		{Cell{0, 9}, Left, Cell{GridSize - 1, 9}},
		{Cell{9, GridSize - 1}, Down, Cell{9, 0}},
		{Cell{9, 0}, Up, Cell{9, GridSize - 1}},
		{Cell{4, 9}, Right, Cell{5, 9}},
	}
	for _, tc := range cases {
		if got := tc.from.Step(tc.dir); got != tc.want {
			t.Errorf("%v.Step(%v) = %v, want %v", tc.from, tc.dir, got, tc.want)
		}
	}
}
